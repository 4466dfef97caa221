package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hafriyat/pkg/model"
)

func TestValidateValue(t *testing.T) {
	cases := []struct {
		name     string
		field    string
		value    string
		required bool
		want     Verdict
	}{
		{
			name: "required name empty", field: "name", value: "   ", required: true,
			want: Verdict{Field: "name", Validity: model.Empty, Message: "Ad Soyad alanı zorunludur."},
		},
		{
			name: "valid email", field: "email", value: "user@example.com", required: true,
			want: Verdict{Field: "email", Validity: model.Valid},
		},
		{
			name: "malformed email", field: "email", value: "not-an-email", required: true,
			want: Verdict{Field: "email", Validity: model.FormatInvalid, Message: "Geçerli bir e-posta adresi giriniz."},
		},
		{
			name: "empty email reports required first", field: "email", value: "", required: true,
			want: Verdict{Field: "email", Validity: model.Empty, Message: "E-posta alanı zorunludur."},
		},
		{
			name: "email with two at signs", field: "email", value: "a@b@example.com", required: true,
			want: Verdict{Field: "email", Validity: model.FormatInvalid, Message: "Geçerli bir e-posta adresi giriniz."},
		},
		{
			name: "email without tld dot", field: "email", value: "user@localhost", required: true,
			want: Verdict{Field: "email", Validity: model.FormatInvalid, Message: "Geçerli bir e-posta adresi giriniz."},
		},
		{
			name: "email surrounded by spaces is trimmed", field: "email", value: "  user@example.com  ", required: true,
			want: Verdict{Field: "email", Validity: model.Valid},
		},
		{
			name: "valid phone", field: "phone", value: "+90 555 123 45 67", required: true,
			want: Verdict{Field: "phone", Validity: model.Valid},
		},
		{
			name: "phone with parentheses and hyphens", field: "phone", value: "(0555) 123-45-67", required: true,
			want: Verdict{Field: "phone", Validity: model.Valid},
		},
		{
			name: "short phone", field: "phone", value: "123", required: true,
			want: Verdict{Field: "phone", Validity: model.FormatInvalid, Message: "Geçerli bir telefon numarası giriniz."},
		},
		{
			name: "phone with letters", field: "phone", value: "0555 CALL NOW", required: true,
			want: Verdict{Field: "phone", Validity: model.FormatInvalid, Message: "Geçerli bir telefon numarası giriniz."},
		},
		{
			name: "email with inner no-break space", field: "email", value: "user\u00a0name@example.com", required: true,
			want: Verdict{Field: "email", Validity: model.FormatInvalid, Message: "Geçerli bir e-posta adresi giriniz."},
		},
		{
			name: "email with ideographic space in domain", field: "email", value: "user@exa\u3000mple.com", required: true,
			want: Verdict{Field: "email", Validity: model.FormatInvalid, Message: "Geçerli bir e-posta adresi giriniz."},
		},
		{
			name: "email wrapped in byte order marks is trimmed", field: "email", value: "\ufeffuser@example.com\ufeff", required: true,
			want: Verdict{Field: "email", Validity: model.Valid},
		},
		{
			name: "phone with no-break spaces", field: "phone", value: "+90\u00a0555\u00a0123\u00a045\u00a067", required: true,
			want: Verdict{Field: "phone", Validity: model.Valid},
		},
		{
			name: "phone with thin spaces", field: "phone", value: "0555\u2009123\u200945\u200967", required: true,
			want: Verdict{Field: "phone", Validity: model.Valid},
		},
		{
			name: "only no-break spaces counts as empty", field: "name", value: "\u00a0\u2003\ufeff", required: true,
			want: Verdict{Field: "name", Validity: model.Empty, Message: "Ad Soyad alanı zorunludur."},
		},
		{
			name: "optional empty field", field: "phone", value: "", required: false,
			want: Verdict{Field: "phone", Validity: model.Valid},
		},
		{
			name: "unknown field falls back to raw name", field: "company", value: "", required: true,
			want: Verdict{Field: "company", Validity: model.Empty, Message: "company alanı zorunludur."},
		},
		{
			name: "message has no format rule", field: "message", value: "@@", required: true,
			want: Verdict{Field: "message", Validity: model.Valid},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateValue(tc.field, tc.value, tc.required)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("verdict mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateForm_SkipsOptionalFields(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{Name: "name", Required: true},
		{Name: "email", Required: true},
		{Name: "phone"},
	}}

	result := ValidateForm(form, map[string]string{
		"name":  "Ayaz",
		"email": "user@example.com",
		"phone": "123",
	})
	if !result.Valid {
		t.Fatalf("expected malformed optional phone to be ignored, got %+v", result.Errors())
	}
	if len(result.Verdicts) != 2 {
		t.Fatalf("expected verdicts for required fields only, got %d", len(result.Verdicts))
	}
}

func TestValidateForm_ReportsEveryFailure(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{Name: "name", Required: true},
		{Name: "email", Required: true},
		{Name: "message", Required: true},
	}}

	result := ValidateForm(form, map[string]string{"email": "nope"})
	if result.Valid {
		t.Fatalf("expected form to be invalid")
	}

	want := []model.FieldError{
		{Field: "name", Message: "Ad Soyad alanı zorunludur."},
		{Field: "email", Message: "Geçerli bir e-posta adresi giriniz."},
		{Field: "message", Message: "Mesaj alanı zorunludur."},
	}
	if diff := cmp.Diff(want, result.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestVerdictFieldError(t *testing.T) {
	if _, ok := (Verdict{Field: "name", Validity: model.Valid}).FieldError(); ok {
		t.Fatalf("valid verdict must not produce a field error")
	}
	fe, ok := (Verdict{Field: "name", Validity: model.Empty, Message: "x"}).FieldError()
	if !ok || fe.Field != "name" || fe.Message != "x" {
		t.Fatalf("unexpected field error %+v (ok=%v)", fe, ok)
	}
}
