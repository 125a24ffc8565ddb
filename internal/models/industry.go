package models

// Industry is an entry in the industry directory
type Industry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Industries is the default industry directory
var Industries = []Industry{
	{ID: "technology", Name: "Technology", Icon: "💻"},
	{ID: "healthcare", Name: "Healthcare", Icon: "🏥"},
	{ID: "fintech", Name: "FinTech", Icon: "💰"},
	{ID: "ecommerce", Name: "E-commerce", Icon: "🛒"},
	{ID: "automotive", Name: "Automotive", Icon: "🚗"},
	{ID: "real-estate", Name: "Real Estate", Icon: "🏠"},
}

// FindIndustry looks up an industry by id in the given directory
func FindIndustry(directory []Industry, id string) (Industry, bool) {
	for _, industry := range directory {
		if industry.ID == id {
			return industry, true
		}
	}
	return Industry{}, false
}

// IndustryName returns the display name for id, or id itself when unknown
func IndustryName(directory []Industry, id string) string {
	if industry, ok := FindIndustry(directory, id); ok {
		return industry.Name
	}
	return id
}
