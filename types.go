package artran

// ModelNMT selects the neural machine translation model of the upstream provider.
const ModelNMT = "nmt"

// DefaultCapacity is the default maximum number of cached translations.
const DefaultCapacity = 500

// TranslationKey identifies one unit of translatable content.
// Keys compare by value on all three fields, without any normalization.
type TranslationKey struct {
	Text string
	From string
	To   string
}

// Record is an article with its text-bearing fields and metadata.
type Record struct {
	ID          string            `json:"id,omitempty"`
	Language    string            `json:"language"`
	Title       string            `json:"title"`
	Text        string            `json:"text"`
	Description string            `json:"description"`
	Keywords    []string          `json:"keywords"`
	Journal     string            `json:"journal,omitempty"`
	Site        string            `json:"site,omitempty"`
	URL         string            `json:"url,omitempty"`
	Authors     []string          `json:"authors,omitempty"`
	Published   string            `json:"published,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// TextFields holds the translatable fields of a Record.
type TextFields struct {
	Title       string
	Text        string
	Description string
	Keywords    []string
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	out := *r
	if r.Keywords != nil {
		out.Keywords = append([]string(nil), r.Keywords...)
	}
	if r.Authors != nil {
		out.Authors = append([]string(nil), r.Authors...)
	}
	if r.Labels != nil {
		out.Labels = make(map[string]string, len(r.Labels))
		for k, v := range r.Labels {
			out.Labels[k] = v
		}
	}
	return &out
}

// WithTranslation returns a copy of the record in language lang with its text
// fields replaced by f. Metadata is copied unchanged.
func (r *Record) WithTranslation(lang string, f TextFields) *Record {
	out := r.Clone()
	out.Language = lang
	out.Title = f.Title
	out.Text = f.Text
	out.Description = f.Description
	out.Keywords = nil
	if f.Keywords != nil {
		out.Keywords = append(make([]string, 0, len(f.Keywords)), f.Keywords...)
	}
	return out
}

// FieldResult is the outcome of translating a single field.
type FieldResult struct {
	Field  string // "title", "text", "description" or "keywords"
	Index  int    // Keyword position, -1 for scalar fields
	Source string // Original text
	Text   string // Translated text, empty on failure
	Err    error  // *FieldTranslationError on failure
}

// OK reports whether the field was translated.
func (f FieldResult) OK() bool {
	return f.Err == nil
}

// RecordResult is the detailed result of a record translation.
type RecordResult struct {
	Record *Record
	Fields []FieldResult
}

// Failed returns the fields that could not be translated.
func (r *RecordResult) Failed() []FieldResult {
	var failed []FieldResult
	for _, f := range r.Fields {
		if !f.OK() {
			failed = append(failed, f)
		}
	}
	return failed
}
