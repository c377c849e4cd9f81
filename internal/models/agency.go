package models

// AgencyReference is the agency entry placed in response references.
type AgencyReference struct {
	Disclaimer     string `json:"disclaimer"`
	Email          string `json:"email"`
	FareURL        string `json:"fareUrl"`
	ID             string `json:"id"`
	Lang           string `json:"lang"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	PrivateService bool   `json:"privateService"`
	Timezone       string `json:"timezone"`
	URL            string `json:"url"`
}

func NewAgencyReference(id, name, url, timezone, lang, phone, email, fareUrl, disclaimer string, privateService bool) AgencyReference {
	return AgencyReference{
		Disclaimer:     disclaimer,
		Email:          email,
		FareURL:        fareUrl,
		ID:             id,
		Lang:           lang,
		Name:           name,
		Phone:          phone,
		PrivateService: privateService,
		Timezone:       timezone,
		URL:            url,
	}
}
