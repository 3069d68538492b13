package importrecords

type Input struct {
	Collection string `json:"collection"`
	Format     string `json:"format"` // "csv" or "json"
	Data       string `json:"data"`
}

type Output struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Collection    string `json:"collection"`
	BatchID       string `json:"batchId"`
	ImportedCount int    `json:"importedCount"`
	ImportedIDs   []int  `json:"importedIds"`
}

// payloadSchema is the shape every import payload must satisfy before any
// record is applied: a JSON array of flat objects.
const payloadSchema = `{
	"type": "array",
	"items": {
		"type": "object"
	}
}`
