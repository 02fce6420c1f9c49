package resolver

import (
	"errors"
	"strings"

	"form_automation/domain/entities"
	"form_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// errLabelNotFound gates progression to the outer fallback strategies.
// It never escapes a resolver entry point.
var errLabelNotFound = errors.New("label not found")

// Resolver locates form controls by the human-readable label text
// associated with them instead of structural selectors. Each entry
// point walks an ordered strategy chain and returns the first hit;
// only exhaustion of the whole chain fails the call.
type Resolver struct {
	doc    interfaces.Document
	logger *logrus.Logger
}

// New - creates a resolver bound to a document handle
func New(doc interfaces.Document, logger *logrus.Logger) *Resolver {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return &Resolver{doc: doc, logger: logger}
}

// step is one lookup technique in a strategy chain. A step that cannot
// produce an element reports ok=false and the chain moves on; no step
// is ever retried.
type step struct {
	name string
	find func() (interfaces.Element, bool)
}

// resolve - runs a strategy chain and takes the first present result
func (r *Resolver) resolve(kind entities.ControlKind, label string, chain []step) (interfaces.Element, error) {
	for _, s := range chain {
		if el, ok := s.find(); ok {
			r.logger.Debugf("resolved %s for label %q via %s", kind, label, s.name)
			return el, nil
		}
		r.logger.Debugf("strategy %q yielded nothing for label %q", s.name, label)
	}
	return nil, &entities.ElementNotFoundError{Kind: kind, Label: label}
}

// findLabel - returns the first label element in document order whose
// rendered text contains the requested text (case-sensitive substring)
func (r *Resolver) findLabel(text string) (interfaces.Element, error) {
	labels, err := r.doc.FindAll("label")
	if err != nil {
		return nil, errLabelNotFound
	}
	for _, lab := range labels {
		t, err := lab.Text()
		if err != nil {
			continue
		}
		if strings.Contains(t, text) {
			return lab, nil
		}
	}
	return nil, errLabelNotFound
}

// ResolveInput locates a text input by its label. Strategy order:
// label association (for/id), nearest following-sibling input, input
// inside the label's own subtree, then a whole-document search by
// exact placeholder or name containment.
func (r *Resolver) ResolveInput(label string) (interfaces.Element, error) {
	var chain []step

	lab, labErr := r.findLabel(label)
	if labErr == nil {
		chain = append(chain,
			step{"label association", func() (interfaces.Element, bool) {
				return r.associated(lab, isInputLike)
			}},
			step{"following sibling input", func() (interfaces.Element, bool) {
				return firstMatch(lab.FollowingSiblings, isInputLike)
			}},
			step{"descendant input", func() (interfaces.Element, bool) {
				return firstDescendant(lab, "input, textarea")
			}},
		)
	}
	chain = append(chain, step{"placeholder or name attribute", func() (interfaces.Element, bool) {
		return r.inputByAttribute(label)
	}})

	return r.resolve(entities.KindInput, label, chain)
}

// ResolveRadio locates a radio input by its label. Strategy order:
// label association, radio immediately preceding the label (control
// drawn before its caption), radio immediately following it, then a
// whole-document search by exact value attribute.
func (r *Resolver) ResolveRadio(label string) (interfaces.Element, error) {
	var chain []step

	lab, labErr := r.findLabel(label)
	if labErr == nil {
		chain = append(chain,
			step{"label association", func() (interfaces.Element, bool) {
				return r.associated(lab, isRadio)
			}},
			step{"preceding sibling radio", func() (interfaces.Element, bool) {
				return adjacentMatch(lab.PrecedingSiblings, isRadio)
			}},
			step{"following sibling radio", func() (interfaces.Element, bool) {
				return adjacentMatch(lab.FollowingSiblings, isRadio)
			}},
		)
	}
	chain = append(chain, step{"value attribute", func() (interfaces.Element, bool) {
		return r.radioByValue(label)
	}})

	return r.resolve(entities.KindRadio, label, chain)
}

// associated - looks up the control named by the label's for attribute.
// The resolved element is accepted only if it matches the requested
// category; a mistyped association falls through to the next strategy.
func (r *Resolver) associated(label interfaces.Element, accept func(interfaces.Element) bool) (interfaces.Element, bool) {
	id, err := label.Attribute("for")
	if err != nil || id == "" {
		return nil, false
	}
	el, err := r.doc.FindByID(id)
	if err != nil {
		return nil, false
	}
	if !accept(el) {
		return nil, false
	}
	return el, true
}

// inputByAttribute - whole-document fallback: placeholder equals the
// label text exactly, or name contains it
func (r *Resolver) inputByAttribute(label string) (interfaces.Element, bool) {
	inputs, err := r.doc.FindAll("input, textarea")
	if err != nil {
		return nil, false
	}
	for _, el := range inputs {
		if placeholder, err := el.Attribute("placeholder"); err == nil && placeholder == label {
			return el, true
		}
		if name, err := el.Attribute("name"); err == nil && name != "" && strings.Contains(name, label) {
			return el, true
		}
	}
	return nil, false
}

// radioByValue - whole-document fallback: radio whose value attribute
// equals the label text exactly
func (r *Resolver) radioByValue(label string) (interfaces.Element, bool) {
	radios, err := r.doc.FindAll("input[type='radio']")
	if err != nil {
		return nil, false
	}
	for _, el := range radios {
		if value, err := el.Attribute("value"); err == nil && value == label {
			return el, true
		}
	}
	return nil, false
}

// firstMatch - scans a sibling axis (nearest first) for an accepted element
func firstMatch(siblings func() ([]interfaces.Element, error), accept func(interfaces.Element) bool) (interfaces.Element, bool) {
	list, err := siblings()
	if err != nil {
		return nil, false
	}
	for _, el := range list {
		if accept(el) {
			return el, true
		}
	}
	return nil, false
}

// adjacentMatch - accepts only the immediately adjacent element
// sibling; anything in between disqualifies the axis
func adjacentMatch(siblings func() ([]interfaces.Element, error), accept func(interfaces.Element) bool) (interfaces.Element, bool) {
	list, err := siblings()
	if err != nil || len(list) == 0 {
		return nil, false
	}
	if !accept(list[0]) {
		return nil, false
	}
	return list[0], true
}

// firstDescendant - first element under root matching the selector
func firstDescendant(root interfaces.Element, selector string) (interfaces.Element, bool) {
	el, err := root.Find(selector)
	if err != nil || el == nil {
		return nil, false
	}
	return el, true
}

func isInputLike(el interfaces.Element) bool {
	tag, err := el.TagName()
	if err != nil {
		return false
	}
	return tag == "input" || tag == "textarea"
}

func isRadio(el interfaces.Element) bool {
	tag, err := el.TagName()
	if err != nil || tag != "input" {
		return false
	}
	typ, err := el.Attribute("type")
	return err == nil && typ == "radio"
}

func isNativeSelect(el interfaces.Element) bool {
	tag, err := el.TagName()
	return err == nil && tag == "select"
}

func isComposite(el interfaces.Element) bool {
	role, err := el.Attribute("role")
	return err == nil && (role == "combobox" || role == "listbox")
}
