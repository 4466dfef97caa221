package model

var fieldLabels = map[string]string{
	FieldName:    "Ad Soyad",
	FieldEmail:   "E-posta",
	FieldPhone:   "Telefon",
	FieldMessage: "Mesaj",
}

// FieldLabel resolves the human-facing label of a contact form field. Unknown
// names fall back to the raw field name.
func FieldLabel(name string) string {
	if label, ok := fieldLabels[name]; ok {
		return label
	}
	return name
}
