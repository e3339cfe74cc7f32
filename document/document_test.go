// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package document

import (
	"testing"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/annotation"
	"seehuhn.de/go/pdfdoc/pdfwrite"
	"seehuhn.de/go/pdfdoc/validate"
)

func TestFinishEmptyPage(t *testing.T) {
	doc, err := New(pdfwrite.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := doc.StartPage(&PageOptions{MediaBox: A4}); err != nil {
		t.Fatal(err)
	}
	data, err := doc.Finish()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("Finish() returned no bytes")
	}
}

func TestFinishTwiceFails(t *testing.T) {
	doc, err := New(pdfwrite.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := doc.Finish(); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.Finish(); err == nil {
		t.Error("expected an error calling Finish twice")
	}
}

func TestStartPageAfterFinishFails(t *testing.T) {
	doc, err := New(pdfwrite.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := doc.Finish(); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.StartPage(nil); err == nil {
		t.Error("expected an error starting a page after Finish")
	}
}

func TestAnnotationIsWritten(t *testing.T) {
	doc, err := New(pdfwrite.Options{})
	if err != nil {
		t.Fatal(err)
	}
	page, err := doc.StartPage(&PageOptions{MediaBox: A4})
	if err != nil {
		t.Fatal(err)
	}
	page.AddAnnotation(&annotation.Annotation{
		Rect:   pdf.Rectangle{URx: 10, URy: 10},
		Action: pdf.Dict{"S": pdf.Name("URI"), "URI": pdf.String("https://example.com")},
	})
	if _, err := doc.Finish(); err != nil {
		t.Fatal(err)
	}
}

func TestTaggedDocumentBuildsStructTree(t *testing.T) {
	doc, err := New(pdfwrite.Options{Validator: validate.UA1})
	if err != nil {
		t.Fatal(err)
	}
	page, err := doc.StartPage(&PageOptions{MediaBox: A4})
	if err != nil {
		t.Fatal(err)
	}
	surf := page.Surface()
	group := surf.BeginGroup("P")
	group.Lang = "en"
	if err := surf.Tag("Span", func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	surf.EndGroup()

	page.AddTaggedAnnotation(&annotation.Annotation{
		Rect:   pdf.Rectangle{URx: 10, URy: 10},
		Action: pdf.Dict{"S": pdf.Name("URI"), "URI": pdf.String("https://example.com")},
	})

	if _, err := doc.Finish(); err != nil {
		t.Fatal(err)
	}
	if doc.tagRoot == nil || len(doc.tagRoot.Children) != 2 {
		t.Fatalf("expected 2 top-level struct tree children, got %#v", doc.tagRoot)
	}
}
