package browser

import (
	"fmt"
	"strings"

	"form_automation/domain/interfaces"

	"github.com/playwright-community/playwright-go"
)

type playwrightDocument struct {
	page playwright.Page
}

func (d *playwrightDocument) Find(selector string) (interfaces.Element, error) {
	return firstLocator(d.page.Locator(selector), selector)
}

func (d *playwrightDocument) FindAll(selector string) ([]interfaces.Element, error) {
	return allLocators(d.page.Locator(selector))
}

func (d *playwrightDocument) FindByID(id string) (interfaces.Element, error) {
	selector := fmt.Sprintf("[id=%q]", id)
	return firstLocator(d.page.Locator(selector), selector)
}

type playwrightElement struct {
	loc playwright.Locator
}

func (e *playwrightElement) TagName() (string, error) {
	result, err := e.loc.Evaluate("el => el.tagName.toLowerCase()", nil)
	if err != nil {
		return "", err
	}
	tag, _ := result.(string)
	return tag, nil
}

func (e *playwrightElement) Text() (string, error) {
	return e.loc.TextContent()
}

func (e *playwrightElement) Attribute(name string) (string, error) {
	value, err := e.loc.GetAttribute(name)
	if err != nil {
		return "", nil
	}
	return value, nil
}

func (e *playwrightElement) Value() (string, error) {
	result, err := e.loc.Evaluate("el => 'value' in el ? String(el.value ?? '') : (el.getAttribute('value') || '')", nil)
	if err != nil {
		return "", err
	}
	value, _ := result.(string)
	return value, nil
}

func (e *playwrightElement) Selected() (bool, error) {
	result, err := e.loc.Evaluate("el => !!(el.checked || el.selected || el.getAttribute('aria-selected') === 'true')", nil)
	if err != nil {
		return false, err
	}
	selected, _ := result.(bool)
	return selected, nil
}

func (e *playwrightElement) Find(selector string) (interfaces.Element, error) {
	return firstLocator(e.loc.Locator(selector), selector)
}

func (e *playwrightElement) FindAll(selector string) ([]interfaces.Element, error) {
	return allLocators(e.loc.Locator(selector))
}

func (e *playwrightElement) FollowingSiblings() ([]interfaces.Element, error) {
	return allLocators(e.loc.Locator("xpath=following-sibling::*"))
}

func (e *playwrightElement) PrecedingSiblings() ([]interfaces.Element, error) {
	// XPath yields document order; the contract wants nearest first
	elements, err := allLocators(e.loc.Locator("xpath=preceding-sibling::*"))
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(elements)-1; i < j; i, j = i+1, j-1 {
		elements[i], elements[j] = elements[j], elements[i]
	}
	return elements, nil
}

func (e *playwrightElement) Click() error {
	// Playwright refuses to click an option inside a closed native
	// select (no layout box); selection goes through the owning select
	if tag, err := e.TagName(); err == nil && tag == "option" {
		return e.selectAsOption()
	}
	return e.loc.Click()
}

func (e *playwrightElement) selectAsOption() error {
	text, err := e.loc.TextContent()
	if err != nil {
		return err
	}
	owner := e.loc.Locator("xpath=ancestor::select[1]")
	_, err = owner.SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{strings.TrimSpace(text)},
	})
	return err
}

func (e *playwrightElement) Clear() error {
	return e.loc.Clear()
}

func (e *playwrightElement) Fill(value string) error {
	return e.loc.Fill(value)
}

func (e *playwrightElement) ScrollIntoView() error {
	return e.loc.ScrollIntoViewIfNeeded()
}

func firstLocator(loc playwright.Locator, selector string) (interfaces.Element, error) {
	count, err := loc.Count()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return &playwrightElement{loc: loc.First()}, nil
}

func allLocators(loc playwright.Locator) ([]interfaces.Element, error) {
	locators, err := loc.All()
	if err != nil {
		return nil, err
	}
	elements := make([]interfaces.Element, 0, len(locators))
	for _, l := range locators {
		elements = append(elements, &playwrightElement{loc: l})
	}
	return elements, nil
}

var _ interfaces.Document = (*playwrightDocument)(nil)
var _ interfaces.Element = (*playwrightElement)(nil)
