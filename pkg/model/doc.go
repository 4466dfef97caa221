// Package model defines the contact form model shared by the validators, the
// submission controller and every renderer. A FormModel is built once from the
// form definition (see pkg/formdef) and describes the fixed field set of the
// contact form (name, email, phone, message) together with the identifiers the
// page surfaces rely on: the form id, the submit control label and the success
// dialog id. Fields carry only static metadata; their values and validity live
// on the surface the controller drives.
package model
