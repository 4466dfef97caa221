package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	hafriyat "github.com/goliatone/go-hafriyat"
	"github.com/goliatone/go-hafriyat/pkg/controller"
	"github.com/goliatone/go-hafriyat/pkg/htmldoc"
	"github.com/goliatone/go-hafriyat/pkg/model"
	"github.com/goliatone/go-hafriyat/pkg/ratelimit"
	"github.com/goliatone/go-hafriyat/pkg/render"
)

// simulation is the outcome printed by the simulate command.
type simulation struct {
	State            string           `json:"state"`
	DefaultPrevented bool             `json:"defaultPrevented"`
	DialogShown      bool             `json:"dialogShown"`
	Form             htmldoc.Snapshot `json:"form"`
}

func newSimulateCmd(root *rootOptions) *cobra.Command {
	values := map[string]*string{}
	var fail bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Submit the contact form of the rendered page in memory",
		Long: `Renders the page, types the given values into the contact form, blurs
each field and submits it. The simulated delivery completes instantly and
the resulting form state is printed as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			site, err := hafriyat.NewSite(cmd.Context(), *cfg)
			if err != nil {
				return err
			}

			given := make(map[string]string, len(values))
			for name, v := range values {
				given[name] = *v
			}
			result, err := simulate(cmd.Context(), site, given, fail)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	for _, name := range []string{model.FieldName, model.FieldEmail, model.FieldPhone, model.FieldMessage} {
		values[name] = cmd.Flags().String(name, "", model.FieldLabel(name)+" value")
	}
	cmd.Flags().BoolVar(&fail, "fail", false, "make the delivery fail")
	return cmd
}

func simulate(ctx context.Context, site *hafriyat.Site, values map[string]string, fail bool) (simulation, error) {
	html, err := site.Render(ctx, hafriyat.PageRenderer, render.RenderOptions{})
	if err != nil {
		return simulation{}, err
	}
	doc, err := htmldoc.Parse(bytes.NewReader(html))
	if err != nil {
		return simulation{}, err
	}

	page := site.Page()
	formID := page.Form.ID
	dialogID := page.Form.SuccessDialogID

	clock := ratelimit.NewManualClock(time.Now())
	simulated := controller.NewSimulatedSubmitter(page.Runtime.SubmitDelay(), clock)
	var submitter controller.Submitter = simulated
	if fail {
		submitter = controller.BlockingSubmitter(func(context.Context, controller.Submission) error {
			return errors.New("delivery failed")
		})
	}

	c := controller.New(
		controller.WithFormID(formID),
		controller.WithDialogID(dialogID),
		controller.WithSubmitter(submitter),
		controller.WithContext(ctx),
	)
	if err := c.Init(doc); err != nil {
		return simulation{}, err
	}

	for _, name := range doc.FieldNames(formID) {
		if err := doc.Input(formID, name, values[name]); err != nil {
			return simulation{}, err
		}
		if err := doc.Blur(formID, name); err != nil {
			return simulation{}, err
		}
	}

	event, err := doc.Submit(formID)
	if err != nil {
		return simulation{}, err
	}
	clock.Advance(simulated.Delay)
	c.Wait()

	snap, err := doc.Snapshot(formID)
	if err != nil {
		return simulation{}, err
	}
	return simulation{
		State:            c.State().String(),
		DefaultPrevented: event.DefaultPrevented(),
		DialogShown:      doc.DialogShown(dialogID) > 0,
		Form:             snap,
	}, nil
}
