package browser

import (
	"form_automation/domain/interfaces"

	"github.com/tebeka/selenium"
)

type seleniumDocument struct {
	wd selenium.WebDriver
}

func (d *seleniumDocument) Find(selector string) (interfaces.Element, error) {
	el, err := d.wd.FindElement(selenium.ByCSSSelector, selector)
	if err != nil {
		return nil, err
	}
	return &seleniumElement{wd: d.wd, el: el}, nil
}

func (d *seleniumDocument) FindAll(selector string) ([]interfaces.Element, error) {
	els, err := d.wd.FindElements(selenium.ByCSSSelector, selector)
	if err != nil {
		return nil, err
	}
	return wrapSeleniumElements(d.wd, els), nil
}

func (d *seleniumDocument) FindByID(id string) (interfaces.Element, error) {
	el, err := d.wd.FindElement(selenium.ByID, id)
	if err != nil {
		return nil, err
	}
	return &seleniumElement{wd: d.wd, el: el}, nil
}

type seleniumElement struct {
	wd selenium.WebDriver
	el selenium.WebElement
}

func (e *seleniumElement) TagName() (string, error) {
	return e.el.TagName()
}

func (e *seleniumElement) Text() (string, error) {
	return e.el.Text()
}

func (e *seleniumElement) Attribute(name string) (string, error) {
	// WebDriver reports a missing attribute as an error; the contract
	// is an empty string
	value, err := e.el.GetAttribute(name)
	if err != nil {
		return "", nil
	}
	return value, nil
}

func (e *seleniumElement) Value() (string, error) {
	return e.Attribute("value")
}

func (e *seleniumElement) Selected() (bool, error) {
	return e.el.IsSelected()
}

func (e *seleniumElement) Find(selector string) (interfaces.Element, error) {
	el, err := e.el.FindElement(selenium.ByCSSSelector, selector)
	if err != nil {
		return nil, err
	}
	return &seleniumElement{wd: e.wd, el: el}, nil
}

func (e *seleniumElement) FindAll(selector string) ([]interfaces.Element, error) {
	els, err := e.el.FindElements(selenium.ByCSSSelector, selector)
	if err != nil {
		return nil, err
	}
	return wrapSeleniumElements(e.wd, els), nil
}

func (e *seleniumElement) FollowingSiblings() ([]interfaces.Element, error) {
	els, err := e.el.FindElements(selenium.ByXPATH, "./following-sibling::*")
	if err != nil {
		return nil, err
	}
	return wrapSeleniumElements(e.wd, els), nil
}

func (e *seleniumElement) PrecedingSiblings() ([]interfaces.Element, error) {
	// XPath yields document order; the contract wants nearest first
	els, err := e.el.FindElements(selenium.ByXPATH, "./preceding-sibling::*")
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(els)-1; i < j; i, j = i+1, j-1 {
		els[i], els[j] = els[j], els[i]
	}
	return wrapSeleniumElements(e.wd, els), nil
}

func (e *seleniumElement) Click() error {
	return e.el.Click()
}

func (e *seleniumElement) Clear() error {
	return e.el.Clear()
}

func (e *seleniumElement) Fill(value string) error {
	return e.el.SendKeys(value)
}

func (e *seleniumElement) ScrollIntoView() error {
	script := `
	(function() {
		var element = arguments[0];
		element.scrollIntoView({ behavior: 'smooth', block: 'center' });
		return true;
	})();
	`
	_, err := e.wd.ExecuteScript(script, []interface{}{e.el})
	return err
}

func wrapSeleniumElements(wd selenium.WebDriver, els []selenium.WebElement) []interfaces.Element {
	wrapped := make([]interfaces.Element, 0, len(els))
	for _, el := range els {
		wrapped = append(wrapped, &seleniumElement{wd: wd, el: el})
	}
	return wrapped
}

var _ interfaces.Document = (*seleniumDocument)(nil)
var _ interfaces.Element = (*seleniumElement)(nil)
