package main

import (
	"context"
	"fmt"
	"os"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/adapters/file"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/dsl"
)

// gen-templates seeds a file store with starter funnels, so a fresh
// `funnelfy serve --store file` has something to open.
func main() {
	targetDir := ".funnelfy/templates"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	// Ensure dir exists
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		panic(err)
	}

	fmt.Printf("Generating starter templates in: %s\n", targetDir)

	store := file.New(targetDir)
	ctx := context.TODO()

	for _, doc := range Templates() {
		receipt, err := store.Save(ctx, doc)
		check(err)
		fmt.Printf("  %s -> %s.json\n", doc.Name, receipt.ID)
	}

	fmt.Println("Done. Verify contents in", targetDir)
}

// Templates returns the starter funnels. Ids are fixed so reruns overwrite.
func Templates() []domain.Document {
	webinar := dsl.New("Webinar Funnel").
		Add("instagram", domain.KindSocial).Name("Instagram Ads").At(80, 120).Icon("instagram").To("signup").
		Add("youtube", domain.KindSocial).Name("YouTube").At(80, 300).Icon("youtube").To("signup").
		Add("signup", domain.KindWebPage).Name("Registration Page").At(320, 180).Icon("landing-page").To("reminder").
		Add("reminder", domain.KindMarketingAction).Name("Email Reminders").At(560, 200).Icon("email").To("attended").
		Add("attended", domain.KindConversionEvent).Name("Attended Live").At(820, 200).Color(domain.ColorGreen).
		MustBuild()
	webinar.ID = "webinar"

	launch := dsl.New("Product Launch").
		Add("tiktok", domain.KindSocial).Name("TikTok").At(80, 150).Icon("tiktok").To("sales").
		Add("sales", domain.KindWebPage).Name("Sales Page").At(320, 120).Icon("sales-page").Scale(1.2).To("checkout").
		Add("checkout", domain.KindWebPage).Name("Checkout").At(580, 120).Icon("checkout").To("purchase", "recovery").
		Add("recovery", domain.KindMarketingAction).Name("Cart Recovery").At(580, 360).Icon("whatsapp").Color(domain.ColorOrange).To("purchase").
		Add("purchase", domain.KindConversionEvent).Name("Purchase").At(860, 160).Icon("purchase").Color(domain.ColorGreen).
		MustBuild()
	launch.ID = "product-launch"

	return []domain.Document{webinar, launch}
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
