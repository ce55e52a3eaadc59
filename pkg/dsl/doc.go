/*
Package dsl provides a fluent Go builder for funnel documents.

It is handy for seeding templates, writing tests and generating funnels from code
instead of hand-writing JSON or YAML.

Example usage:

	doc, err := dsl.New("Webinar Funnel").
		Add("ig", domain.KindSocial).Name("Instagram").At(100, 100).Icon("instagram").To("lp").
		Add("lp", domain.KindWebPage).Name("Registration").At(350, 80).To("live").
		Add("live", domain.KindConversionEvent).Name("Attended").At(600, 100).Color(domain.ColorGreen).
		Build()

	ed, err := funnelfy.New(funnelfy.WithDocument(doc))
*/
package dsl
