// Package icons maps stable icon tags to the glyphs the view layer draws on each step.
//
// Steps only ever store the tag; the live glyph is looked up here whenever a graph is
// rendered, loaded or rehydrated from history.
package icons

import (
	"strings"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
)

// Glyph is the renderable presentation handle of a step.
type Glyph struct {
	Tag    string `json:"tag"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Color  string `json:"color"`
}

// GenericTag is the fallback glyph for anything the registry does not recognise.
const GenericTag = "document"

var registry = map[string]Glyph{
	"instagram":    {Tag: "instagram", Name: "Instagram", Symbol: "📸", Color: "#E1306C"},
	"facebook":     {Tag: "facebook", Name: "Facebook", Symbol: "📘", Color: "#1877F2"},
	"whatsapp":     {Tag: "whatsapp", Name: "WhatsApp", Symbol: "💬", Color: "#25D366"},
	"youtube":      {Tag: "youtube", Name: "YouTube", Symbol: "▶️", Color: "#FF0000"},
	"tiktok":       {Tag: "tiktok", Name: "TikTok", Symbol: "🎵", Color: "#010101"},
	"linkedin":     {Tag: "linkedin", Name: "LinkedIn", Symbol: "💼", Color: "#0A66C2"},
	"twitter":      {Tag: "twitter", Name: "Twitter", Symbol: "🐦", Color: "#1DA1F2"},
	"telegram":     {Tag: "telegram", Name: "Telegram", Symbol: "✈️", Color: "#26A5E4"},
	"pinterest":    {Tag: "pinterest", Name: "Pinterest", Symbol: "📌", Color: "#E60023"},
	"email":        {Tag: "email", Name: "Email", Symbol: "✉️", Color: "#EA4335"},
	"social":       {Tag: "social", Name: "Social Network", Symbol: "🌐", Color: "#6366F1"},
	"google-ads":   {Tag: "google-ads", Name: "Google Ads", Symbol: "📣", Color: "#FBBC04"},
	"landing-page": {Tag: "landing-page", Name: "Landing Page", Symbol: "🖥️", Color: "#0EA5E9"},
	"sales-page":   {Tag: "sales-page", Name: "Sales Page", Symbol: "🛍️", Color: "#8B5CF6"},
	"checkout":     {Tag: "checkout", Name: "Checkout", Symbol: "🛒", Color: "#10B981"},
	"thank-you":    {Tag: "thank-you", Name: "Thank You Page", Symbol: "🎉", Color: "#F59E0B"},
	"webinar":      {Tag: "webinar", Name: "Webinar", Symbol: "🎥", Color: "#EC4899"},
	"blog":         {Tag: "blog", Name: "Blog", Symbol: "📝", Color: "#64748B"},
	"quiz":         {Tag: "quiz", Name: "Quiz", Symbol: "❓", Color: "#14B8A6"},
	"upsell":       {Tag: "upsell", Name: "Upsell", Symbol: "⬆️", Color: "#22C55E"},
	"downsell":     {Tag: "downsell", Name: "Downsell", Symbol: "⬇️", Color: "#EF4444"},
	"order-bump":   {Tag: "order-bump", Name: "Order Bump", Symbol: "➕", Color: "#F97316"},
	"lead":         {Tag: "lead", Name: "Lead Capture", Symbol: "🧲", Color: "#3B82F6"},
	"purchase":     {Tag: "purchase", Name: "Purchase", Symbol: "💰", Color: "#16A34A"},
	GenericTag:     {Tag: GenericTag, Name: "Document", Symbol: "📄", Color: "#94A3B8"},
}

// platform keywords checked, in order, when a tag or name does not match exactly.
// Longer, more specific keywords come first so "sales-page" is not read as "page".
var keywords = []struct {
	needle string
	tag    string
}{
	{"whatsapp", "whatsapp"},
	{"instagram", "instagram"},
	{"facebook", "facebook"},
	{"youtube", "youtube"},
	{"tiktok", "tiktok"},
	{"linkedin", "linkedin"},
	{"twitter", "twitter"},
	{"telegram", "telegram"},
	{"pinterest", "pinterest"},
	{"order-bump", "order-bump"},
	{"order bump", "order-bump"},
	{"orderbump", "order-bump"},
	{"downsell", "downsell"},
	{"upsell", "upsell"},
	{"thank", "thank-you"},
	{"obrigado", "thank-you"},
	{"checkout", "checkout"},
	{"webinar", "webinar"},
	{"sales", "sales-page"},
	{"vendas", "sales-page"},
	{"landing", "landing-page"},
	{"captura", "lead"},
	{"lead", "lead"},
	{"google", "google-ads"},
	{"ads", "google-ads"},
	{"email", "email"},
	{"e-mail", "email"},
	{"blog", "blog"},
	{"quiz", "quiz"},
	{"purchase", "purchase"},
	{"compra", "purchase"},
	{"insta", "instagram"},
	{"zap", "whatsapp"},
	{"x.com", "twitter"},
}

// Resolve returns the glyph for a tag: exact match first, then a case-insensitive
// substring match against known platform names, then the generic document glyph.
func Resolve(tag string) Glyph {
	if g, ok := registry[tag]; ok {
		return g
	}
	if t, ok := match(tag); ok {
		return registry[t]
	}
	return registry[GenericTag]
}

// Lookup returns the glyph registered under exactly tag.
func Lookup(tag string) (Glyph, bool) {
	g, ok := registry[tag]
	return g, ok
}

// Infer derives a tag for a step that has none, from its name, then its id, then its kind.
func Infer(kind domain.Kind, id, name string) string {
	for _, s := range []string{name, id} {
		if t, ok := match(s); ok {
			return t
		}
	}
	switch kind {
	case domain.KindSocial:
		return "social"
	case domain.KindWebPage:
		return "landing-page"
	case domain.KindMarketingAction:
		return "google-ads"
	case domain.KindConversionEvent:
		return "purchase"
	}
	return GenericTag
}

// Tags returns every registered tag.
func Tags() []string {
	out := make([]string, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	return out
}

func match(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	if _, ok := registry[s]; ok {
		return s, true
	}
	for _, k := range keywords {
		if strings.Contains(s, k.needle) {
			return k.tag, true
		}
	}
	return "", false
}
