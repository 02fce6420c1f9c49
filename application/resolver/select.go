package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"form_automation/domain/entities"
	"form_automation/domain/interfaces"
)

// OptionWaitTimeout caps the poll for asynchronous option population
// before a selection is attempted.
const OptionWaitTimeout = 5 * time.Second

const optionPollInterval = 100 * time.Millisecond

// SelectControl is a resolved select-like handle. The contract is the
// same whether the markup is a native select or a composite
// combobox/listbox widget; callers never branch on shape.
type SelectControl interface {
	// Element returns the underlying element handle
	Element() interfaces.Element

	// Options returns the visible text of the current option set
	Options() ([]string, error)

	// SelectByText selects the option with the given exact visible text
	SelectByText(text string) error

	// SelectedText returns the visible text of the currently selected option
	SelectedText() (string, error)

	// WaitOptions polls until the option set is non-empty, failing with
	// a TimeoutError once the timeout elapses
	WaitOptions(ctx context.Context, timeout time.Duration) error
}

// selectStep mirrors step for strategies that yield a select-like handle.
type selectStep struct {
	name string
	find func() (SelectControl, bool)
}

// ResolveSelect locates a select-like control by its label. The chain
// bridges native selects and ARIA composite widgets: label association
// (native, then composite with a nested native preferred), sibling
// native, sibling composite, descendant native, then whole-document
// fallbacks by name and by aria-label/name on role-bearing containers.
func (r *Resolver) ResolveSelect(label string) (SelectControl, error) {
	var chain []selectStep

	lab, labErr := r.findLabel(label)
	if labErr == nil {
		chain = append(chain,
			selectStep{"label association native", func() (SelectControl, bool) {
				el, ok := r.associated(lab, isNativeSelect)
				if !ok {
					return nil, false
				}
				return &nativeSelect{el: el}, true
			}},
			selectStep{"label association composite", func() (SelectControl, bool) {
				el, ok := r.associated(lab, isComposite)
				if !ok {
					return nil, false
				}
				return r.wrapComposite(el), true
			}},
			selectStep{"following sibling select", func() (SelectControl, bool) {
				el, ok := firstMatch(lab.FollowingSiblings, isNativeSelect)
				if !ok {
					return nil, false
				}
				return &nativeSelect{el: el}, true
			}},
			selectStep{"following sibling composite", func() (SelectControl, bool) {
				el, ok := firstMatch(lab.FollowingSiblings, isComposite)
				if !ok {
					return nil, false
				}
				return r.wrapComposite(el), true
			}},
			selectStep{"descendant select", func() (SelectControl, bool) {
				el, ok := firstDescendant(lab, "select")
				if !ok {
					return nil, false
				}
				return &nativeSelect{el: el}, true
			}},
		)
	}
	chain = append(chain,
		selectStep{"name attribute", func() (SelectControl, bool) {
			return r.selectByName(label)
		}},
		selectStep{"composite by aria-label or name", func() (SelectControl, bool) {
			return r.compositeByAttribute(label)
		}},
	)

	for _, s := range chain {
		if sel, ok := s.find(); ok {
			r.logger.Debugf("resolved %s for label %q via %s", entities.KindSelect, label, s.name)
			return sel, nil
		}
		r.logger.Debugf("strategy %q yielded nothing for label %q", s.name, label)
	}
	return nil, &entities.ElementNotFoundError{Kind: entities.KindSelect, Label: label}
}

// wrapComposite - prefers a native select nested inside the composite
// container; otherwise the container itself is the select-like handle
func (r *Resolver) wrapComposite(container interfaces.Element) SelectControl {
	if nested, err := container.Find("select"); err == nil && nested != nil {
		return &nativeSelect{el: nested}
	}
	return &compositeSelect{el: container}
}

// selectByName - whole-document fallback: native select whose name
// attribute contains the label text
func (r *Resolver) selectByName(label string) (SelectControl, bool) {
	selects, err := r.doc.FindAll("select")
	if err != nil {
		return nil, false
	}
	for _, el := range selects {
		if name, err := el.Attribute("name"); err == nil && name != "" && strings.Contains(name, label) {
			return &nativeSelect{el: el}, true
		}
	}
	return nil, false
}

// compositeByAttribute - whole-document fallback: combobox/listbox
// container whose aria-label or name contains the label text
func (r *Resolver) compositeByAttribute(label string) (SelectControl, bool) {
	containers, err := r.doc.FindAll("[role='combobox'], [role='listbox']")
	if err != nil {
		return nil, false
	}
	for _, el := range containers {
		if aria, err := el.Attribute("aria-label"); err == nil && aria != "" && strings.Contains(aria, label) {
			return r.wrapComposite(el), true
		}
		if name, err := el.Attribute("name"); err == nil && name != "" && strings.Contains(name, label) {
			return r.wrapComposite(el), true
		}
	}
	return nil, false
}

// nativeSelect wraps a native select element; options come from its
// option markup.
type nativeSelect struct {
	el interfaces.Element
}

func (s *nativeSelect) Element() interfaces.Element { return s.el }

func (s *nativeSelect) items() ([]interfaces.Element, error) {
	return s.el.FindAll("option")
}

func (s *nativeSelect) Options() ([]string, error) {
	return optionTexts(s.items)
}

func (s *nativeSelect) SelectByText(text string) error {
	return clickOptionByText(s.items, text)
}

func (s *nativeSelect) SelectedText() (string, error) {
	return selectedOptionText(s.items, func(el interfaces.Element) bool {
		selected, err := el.Selected()
		return err == nil && selected
	})
}

func (s *nativeSelect) WaitOptions(ctx context.Context, timeout time.Duration) error {
	return waitOptions(ctx, s, timeout)
}

// compositeSelect wraps a combobox/listbox container with no nested
// native select; its options are derived from the container's own
// child elements.
type compositeSelect struct {
	el interfaces.Element
}

func (s *compositeSelect) Element() interfaces.Element { return s.el }

func (s *compositeSelect) items() ([]interfaces.Element, error) {
	opts, err := s.el.FindAll("[role='option']")
	if err != nil {
		return nil, err
	}
	if len(opts) > 0 {
		return opts, nil
	}
	// widgets that expose no option roles usually render plain list items
	return s.el.FindAll("li")
}

func (s *compositeSelect) Options() ([]string, error) {
	return optionTexts(s.items)
}

func (s *compositeSelect) SelectByText(text string) error {
	return clickOptionByText(s.items, text)
}

func (s *compositeSelect) SelectedText() (string, error) {
	return selectedOptionText(s.items, func(el interfaces.Element) bool {
		aria, err := el.Attribute("aria-selected")
		return err == nil && aria == "true"
	})
}

func (s *compositeSelect) WaitOptions(ctx context.Context, timeout time.Duration) error {
	return waitOptions(ctx, s, timeout)
}

func optionTexts(items func() ([]interfaces.Element, error)) ([]string, error) {
	list, err := items()
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(list))
	for _, el := range list {
		t, err := el.Text()
		if err != nil {
			return nil, err
		}
		texts = append(texts, strings.TrimSpace(t))
	}
	return texts, nil
}

func clickOptionByText(items func() ([]interfaces.Element, error), text string) error {
	list, err := items()
	if err != nil {
		return err
	}
	for _, el := range list {
		t, err := el.Text()
		if err != nil {
			continue
		}
		if strings.TrimSpace(t) != text {
			continue
		}
		// scrolling is best effort; the click decides the outcome
		_ = el.ScrollIntoView()
		return el.Click()
	}
	return fmt.Errorf("option %q not found", text)
}

func selectedOptionText(items func() ([]interfaces.Element, error), selected func(interfaces.Element) bool) (string, error) {
	list, err := items()
	if err != nil {
		return "", err
	}
	for _, el := range list {
		if !selected(el) {
			continue
		}
		t, err := el.Text()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(t), nil
	}
	return "", fmt.Errorf("no option is selected")
}

// waitOptions - fixed-interval poll on the option count. The timeout
// failure is a TimeoutError, not an ElementNotFoundError, and
// propagates to the caller unmodified.
func waitOptions(ctx context.Context, s SelectControl, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		opts, err := s.Options()
		if err == nil && len(opts) > 0 {
			return nil
		}
		if time.Now().After(deadline) {
			return &entities.TimeoutError{Op: "select options to populate", Timeout: timeout}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(optionPollInterval):
		}
	}
}
