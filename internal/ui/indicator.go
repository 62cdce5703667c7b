package ui

import (
	"fmt"
	"html"
)

// LoadingID is the id of the loading indicator element.
const LoadingID = "loading"

// HiddenClass hides an element through the default stylesheet.
const HiddenClass = "hidden"

// ErrorColor is the text color of the load error message.
const ErrorColor = "#ff6b6b"

// DefaultMarkup is the overlay shown while the model downloads.
const DefaultMarkup = `<div id="loading"><p>Loading model...</p></div>`

// DefaultCSS styles DefaultMarkup: a centered dark panel, removed by the hidden class.
const DefaultCSS = `
#loading {
  left: 50%;
  top: 50%;
  width: 320px;
  height: 64px;
  background: #1a1a1acc;
  border: 1px solid #ffffff33;
  padding: 12px;
  color: #ffffff;
  font-size: 20px;
}
#loading p {
  padding: 4px;
}
.hidden {
  display: none;
}
`

// NewDefaultDocument returns DefaultMarkup styled with DefaultCSS.
func NewDefaultDocument() (*Document, error) {
	doc, err := NewDocument(DefaultMarkup)
	if err != nil {
		return nil, err
	}
	sheet, err := ParseCSS(DefaultCSS)
	if err != nil {
		return nil, err
	}
	doc.SetStylesheet(sheet)
	return doc, nil
}

// LoadingIndicator drives the #loading element: hidden on success, replaced
// by a red message on failure.
type LoadingIndicator struct {
	el *Element
}

// NewLoadingIndicator binds to the element with LoadingID in doc.
func NewLoadingIndicator(doc *Document) (*LoadingIndicator, error) {
	el := doc.GetElementByID(LoadingID)
	if el == nil {
		return nil, fmt.Errorf("ui: no #%s element", LoadingID)
	}
	return &LoadingIndicator{el: el}, nil
}

// Hide adds the hidden class.
func (l *LoadingIndicator) Hide() {
	l.el.AddClass(HiddenClass)
}

// ShowError replaces the indicator content with msg in the error color.
func (l *LoadingIndicator) ShowError(msg string) {
	markup := fmt.Sprintf(`<p style="color: %s;">%s</p>`, ErrorColor, html.EscapeString(msg))
	// the markup is generated here and always parses
	_ = l.el.SetInnerHTML(markup)
}

// Visible reports whether the indicator is still shown.
func (l *LoadingIndicator) Visible() bool {
	return !l.el.HasClass(HiddenClass)
}

// Text returns the indicator's current text.
func (l *LoadingIndicator) Text() string {
	return l.el.InnerText()
}
