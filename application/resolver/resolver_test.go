package resolver_test

import (
	"testing"

	"form_automation/application/resolver"
	"form_automation/domain/entities"
	"form_automation/infrastructure/fixture"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *fixture.Document {
	t.Helper()
	doc, err := fixture.Parse(src)
	require.NoError(t, err)
	return doc
}

func attr(t *testing.T, el interface{ Attribute(string) (string, error) }, name string) string {
	t.Helper()
	value, err := el.Attribute(name)
	require.NoError(t, err)
	return value
}

func TestResolveInputPrefersAssociationOverSibling(t *testing.T) {
	doc := parse(t, `
		<form>
			<label for="first-name">First Name</label>
			<input id="decoy" name="decoy">
			<input id="first-name" name="firstname">
		</form>`)

	input, err := resolver.New(doc, nil).ResolveInput("First Name")
	require.NoError(t, err)
	require.Equal(t, "first-name", attr(t, input, "id"))
}

func TestResolveInputFollowingSibling(t *testing.T) {
	doc := parse(t, `
		<form>
			<label>First Name</label>
			<span>hint</span>
			<input id="first-name">
		</form>`)

	input, err := resolver.New(doc, nil).ResolveInput("First Name")
	require.NoError(t, err)
	require.Equal(t, "first-name", attr(t, input, "id"))
}

func TestResolveInputDescendant(t *testing.T) {
	doc := parse(t, `
		<form>
			<label>First Name <input id="first-name"></label>
		</form>`)

	input, err := resolver.New(doc, nil).ResolveInput("First Name")
	require.NoError(t, err)
	require.Equal(t, "first-name", attr(t, input, "id"))
}

func TestResolveInputPlaceholderFallback(t *testing.T) {
	doc := parse(t, `
		<form>
			<input id="first-name" placeholder="First Name">
		</form>`)

	input, err := resolver.New(doc, nil).ResolveInput("First Name")
	require.NoError(t, err)
	require.Equal(t, "first-name", attr(t, input, "id"))
}

func TestResolveInputNameContainsFallback(t *testing.T) {
	doc := parse(t, `
		<form>
			<input id="mail" name="user-email">
		</form>`)

	input, err := resolver.New(doc, nil).ResolveInput("email")
	require.NoError(t, err)
	require.Equal(t, "mail", attr(t, input, "id"))
}

func TestResolveInputNotFound(t *testing.T) {
	doc := parse(t, `<form><input name="other"></form>`)

	_, err := resolver.New(doc, nil).ResolveInput("First Name")
	var notFound *entities.ElementNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, entities.KindInput, notFound.Kind)
	require.Equal(t, "First Name", notFound.Label)
	require.Contains(t, err.Error(), `"First Name"`)
}

func TestResolveInputLabelContainment(t *testing.T) {
	// a label whose text is a superstring of the query still resolves
	doc := parse(t, `
		<form>
			<label for="first-name">First Name </label>
			<input id="first-name">
		</form>`)

	input, err := resolver.New(doc, nil).ResolveInput("First Name")
	require.NoError(t, err)
	require.Equal(t, "first-name", attr(t, input, "id"))
}

func TestResolveInputPlaceholderIsExactMatch(t *testing.T) {
	// no label matches "First Name " and the placeholder fallback does
	// not trim, so the whitespace discrepancy fails the resolution
	doc := parse(t, `
		<form>
			<label for="first-name">First Name</label>
			<input id="first-name" placeholder="First Name">
		</form>`)

	_, err := resolver.New(doc, nil).ResolveInput("First Name ")
	var notFound *entities.ElementNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "First Name ", notFound.Label)
}

func TestResolveRadioPrefersAssociationOverSibling(t *testing.T) {
	doc := parse(t, `
		<form>
			<input type="radio" name="gender" value="other" id="decoy">
			<label for="gender-male">Male</label>
			<input type="radio" name="gender" value="male" id="gender-male">
		</form>`)

	radio, err := resolver.New(doc, nil).ResolveRadio("Male")
	require.NoError(t, err)
	require.Equal(t, "gender-male", attr(t, radio, "id"))
}

func TestResolveRadioMistypedAssociationFallsThrough(t *testing.T) {
	// the for attribute points at a div; the association strategy
	// rejects it and the sibling strategy wins
	doc := parse(t, `
		<form>
			<label for="not-a-radio">Male</label>
			<input type="radio" name="gender" id="gender-male">
			<div id="not-a-radio"></div>
		</form>`)

	radio, err := resolver.New(doc, nil).ResolveRadio("Male")
	require.NoError(t, err)
	require.Equal(t, "gender-male", attr(t, radio, "id"))
}

func TestResolveRadioPrecedingSibling(t *testing.T) {
	doc := parse(t, `
		<form>
			<input type="radio" name="gender" id="gender-male">
			<label>Male</label>
			<input type="radio" name="gender" id="gender-female">
			<label>Female</label>
		</form>`)

	radio, err := resolver.New(doc, nil).ResolveRadio("Male")
	require.NoError(t, err)
	require.Equal(t, "gender-male", attr(t, radio, "id"))
}

func TestResolveRadioFollowingSibling(t *testing.T) {
	doc := parse(t, `
		<form>
			<label>Male</label>
			<input type="radio" name="gender" id="gender-male">
		</form>`)

	radio, err := resolver.New(doc, nil).ResolveRadio("Male")
	require.NoError(t, err)
	require.Equal(t, "gender-male", attr(t, radio, "id"))
}

func TestResolveRadioSiblingMustBeAdjacent(t *testing.T) {
	// a radio separated from the label by another element is not a
	// sibling match; with no value fallback either, resolution fails
	doc := parse(t, `
		<form>
			<input type="radio" name="gender" id="far-away">
			<span>gap</span>
			<label>Male</label>
			<span>gap</span>
			<input type="radio" name="gender" id="also-far">
		</form>`)

	_, err := resolver.New(doc, nil).ResolveRadio("Male")
	var notFound *entities.ElementNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestResolveRadioValueFallback(t *testing.T) {
	doc := parse(t, `
		<form>
			<input type="radio" name="gender" value="Female" id="gender-female">
			<input type="radio" name="gender" value="Male" id="gender-male">
		</form>`)

	radio, err := resolver.New(doc, nil).ResolveRadio("Male")
	require.NoError(t, err)
	require.Equal(t, "gender-male", attr(t, radio, "id"))
}

func TestResolveRadioNotFound(t *testing.T) {
	doc := parse(t, `<form></form>`)

	_, err := resolver.New(doc, nil).ResolveRadio("Male")
	var notFound *entities.ElementNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, entities.KindRadio, notFound.Kind)
	require.Contains(t, err.Error(), `"Male"`)
}

func TestRepeatedResolutionReturnsSameControl(t *testing.T) {
	doc := parse(t, `
		<form>
			<label for="first-name">First Name</label>
			<input id="first-name">
		</form>`)

	r := resolver.New(doc, nil)
	first, err := r.ResolveInput("First Name")
	require.NoError(t, err)
	second, err := r.ResolveInput("First Name")
	require.NoError(t, err)

	require.NoError(t, first.Fill("John"))
	value, err := second.Value()
	require.NoError(t, err)
	require.Equal(t, "John", value)
}
