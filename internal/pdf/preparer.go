// Package pdf renders the signable document: it fills the AcroForm text
// fields of a PDF template and locks the form so the result can no longer be
// edited through this package. A second Prepare of the output is rejected.
package pdf

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/form"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

type Preparer struct {
	conf *model.Configuration
}

func NewPreparer() *Preparer {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Preparer{conf: conf}
}

// Prepare fills the template's text fields with the given values, locks every
// field and returns the document bytes. Every name in fields must match a
// field in the template; an unreadable template, an unknown name or a
// template whose fields were already locked by an earlier Prepare returns a
// *TemplateError and nothing else happens.
func (p *Preparer) Prepare(template []byte, fields map[string]string) ([]byte, error) {
	known, err := api.FormFields(bytes.NewReader(template), p.conf)
	if err != nil {
		return nil, &TemplateError{Reason: "read form fields", Err: err}
	}
	if err := checkFields(known, fields); err != nil {
		return nil, err
	}

	fill, err := fillData(fields)
	if err != nil {
		return nil, &TemplateError{Reason: "encode form data", Err: err}
	}

	var filled bytes.Buffer
	if err := api.FillForm(bytes.NewReader(template), bytes.NewReader(fill), &filled, p.conf); err != nil {
		return nil, &TemplateError{Reason: "fill form", Err: err}
	}

	var locked bytes.Buffer
	if err := api.LockFormFields(bytes.NewReader(filled.Bytes()), &locked, nil, p.conf); err != nil {
		return nil, &TemplateError{Reason: "lock form fields", Err: err}
	}
	return locked.Bytes(), nil
}

// checkFields rejects names absent from the template and fields that were
// locked by an earlier Prepare. pdfcpu's fill silently skips unknown names
// and overwrites read-only fields, so both checks have to happen up front.
func checkFields(known []form.Field, fields map[string]string) error {
	byName := make(map[string]form.Field, len(known))
	for _, f := range known {
		if f.ID != "" {
			byName[f.ID] = f
		}
		if f.Name != "" {
			byName[f.Name] = f
		}
	}
	for name := range fields {
		f, ok := byName[name]
		if !ok {
			return &TemplateError{Reason: fmt.Sprintf("no form field %q in template", name)}
		}
		if f.Locked {
			return &TemplateError{Reason: fmt.Sprintf("form field %q is locked", name)}
		}
	}
	return nil
}

// fillData builds pdfcpu form-fill JSON for a single form's text fields.
// Each entry carries the field name as both id and name, so it matches
// whichever of the two the template keys its fields by.
func fillData(fields map[string]string) ([]byte, error) {
	type textField struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	type fillForm struct {
		TextFields []textField `json:"textfield"`
	}

	tf := make([]textField, 0, len(fields))
	for name, value := range fields {
		tf = append(tf, textField{ID: name, Name: name, Value: value})
	}
	return json.Marshal(struct {
		Forms []fillForm `json:"forms"`
	}{Forms: []fillForm{{TextFields: tf}}})
}
