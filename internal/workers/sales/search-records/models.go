package searchrecords

type Input struct {
	Collection string `json:"collection"`
	Query      string `json:"query"`
}

type Output struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Query   string      `json:"query"` // normalized form
	Count   int         `json:"count"`
	Results interface{} `json:"results"`
}
