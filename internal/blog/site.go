package blog

type SiteProfile struct {
	Title   string `json:"title"`
	Tagline string `json:"tagline"`
	Footer  string `json:"footer"`
	Author  string `json:"author"`
	Email   string `json:"email"`
}

func DefaultProfile() SiteProfile {
	return SiteProfile{
		Title:   "midnight.thoughts",
		Tagline: "/ just a guy writing stuff when he should be sleeping",
		Footer:  "made with coffee and poor sleep decisions",
		Author:  "midnight",
	}
}
