package directory

// RegionAll is the sentinel region that targets every school.
const RegionAll = "Toda a Cidade"

type (
	// Ad is a partner advertisement surfaced on guardian dashboards,
	// filtered by the active school's region.
	Ad struct {
		ID               string `json:"id"`
		PartnerID        string `json:"partner_id"`
		PartnerName      string `json:"partner_name"`
		Title            string `json:"title"`
		ShortDescription string `json:"short_description"`
		Region           string `json:"region"`
		Emoji            string `json:"emoji"`
		Link             string `json:"link"`
		Featured         bool   `json:"featured"`
	}

	Partner struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		CNPJ        string `json:"cnpj"`
		Address     string `json:"address"`
		Phone       string `json:"phone"`
		ContactName string `json:"contact_name"`
		Region      string `json:"region"`
	}

	SecurityTip struct {
		ID       string `json:"id"`
		Text     string `json:"text"`
		Category string `json:"category"`
	}
)

// DefaultSecurityTips is served until the platform admin curates their own.
var DefaultSecurityTips = []SecurityTip{
	{ID: "1", Text: "Respeite a velocidade máxima permitida na zona escolar.", Category: "safety"},
}

// AdsForRegion keeps the ads targeting the given region or all regions.
func AdsForRegion(ads []Ad, region string) []Ad {
	matched := make([]Ad, 0, len(ads))
	for _, ad := range ads {
		if ad.Region == region || ad.Region == RegionAll {
			matched = append(matched, ad)
		}
	}
	return matched
}
