package recipe

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Recipe is a stored or generated recipe. The first eight fields are the
// persisted core; the rest are optional and only set by generators and
// external recipe providers.
type Recipe struct {
	ID           int    `json:"id"           db:"id"`
	Name         string `json:"name"         db:"name"`
	Ingredients  string `json:"ingredients"  db:"ingredients"` // comma-joined
	Instructions string `json:"instructions" db:"instructions"`
	CookingTime  string `json:"cooking_time" db:"cooking_time"`
	Difficulty   string `json:"difficulty"   db:"difficulty"`
	Language     string `json:"language"     db:"language"`
	Cuisine      string `json:"cuisine"      db:"cuisine"`

	Type                 string `json:"type,omitempty"                  db:"type"`
	Servings             string `json:"servings,omitempty"              db:"servings"`
	Source               string `json:"source,omitempty"                db:"source"`
	CulturalSignificance string `json:"cultural_significance,omitempty" db:"cultural_significance"`
	HealthBenefits       string `json:"health_benefits,omitempty"       db:"health_benefits"`
	FusionStyle          string `json:"fusion_style,omitempty"          db:"fusion_style"`
	Calories             string `json:"calories,omitempty"              db:"calories"`
	PrepTime             string `json:"prep_time,omitempty"             db:"prep_time"`

	// Extra holds document keys this type does not know. They are written
	// back unchanged by the JSON store.
	Extra map[string]json.RawMessage `json:"-" db:"-"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Recipe. Values
// are kept as written; unknown keys land in Extra.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	type Alias Recipe // Create an alias to avoid infinite recursion
	if err := json.Unmarshal(data, (*Alias)(r)); err != nil {
		return err
	}
	extra, err := unknownKeys(data, reflect.TypeOf(Alias{}))
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Recipe.
func (r Recipe) MarshalJSON() ([]byte, error) {
	type Alias Recipe
	return withExtra(Alias(r), r.Extra)
}

// IngredientList splits the comma-joined ingredient text.
func (r Recipe) IngredientList() []string {
	var out []string
	for _, part := range strings.Split(r.Ingredients, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Article is a historic newspaper article. Date is kept as written.
type Article struct {
	ID       int    `json:"id"       db:"id"`
	Title    string `json:"title"    db:"title"`
	Content  string `json:"content"  db:"content"`
	Date     string `json:"date"     db:"date"`
	Source   string `json:"source"   db:"source"`
	Language string `json:"language" db:"language"`
	Category string `json:"category" db:"category"`

	Extra map[string]json.RawMessage `json:"-" db:"-"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Article.
func (a *Article) UnmarshalJSON(data []byte) error {
	type Alias Article
	if err := json.Unmarshal(data, (*Alias)(a)); err != nil {
		return err
	}
	extra, err := unknownKeys(data, reflect.TypeOf(Alias{}))
	if err != nil {
		return err
	}
	a.Extra = extra
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Article.
func (a Article) MarshalJSON() ([]byte, error) {
	type Alias Article
	return withExtra(Alias(a), a.Extra)
}

// RecipePatch carries the fields of a partial update. A nil field is left
// untouched; a non-nil field is assigned even when it points at "".
type RecipePatch struct {
	Name         *string `json:"name,omitempty"`
	Ingredients  *string `json:"ingredients,omitempty"`
	Instructions *string `json:"instructions,omitempty"`
	CookingTime  *string `json:"cooking_time,omitempty"`
	Difficulty   *string `json:"difficulty,omitempty"`
	Language     *string `json:"language,omitempty"`
	Cuisine      *string `json:"cuisine,omitempty"`
	Type         *string `json:"type,omitempty"`
	Servings     *string `json:"servings,omitempty"`
	Source       *string `json:"source,omitempty"`
}

// Apply merges the patch into r in place.
func (p RecipePatch) Apply(r *Recipe) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&r.Name, p.Name)
	set(&r.Ingredients, p.Ingredients)
	set(&r.Instructions, p.Instructions)
	set(&r.CookingTime, p.CookingTime)
	set(&r.Difficulty, p.Difficulty)
	set(&r.Cuisine, p.Cuisine)
	set(&r.Type, p.Type)
	set(&r.Servings, p.Servings)
	set(&r.Source, p.Source)
	set(&r.Language, p.Language)
}

// Document is the on-disk layout of the JSON store. Older documents used
// "articles" instead of "newspapers"; both are read.
type Document struct {
	Recipes    []Recipe  `json:"recipes"`
	Newspapers []Article `json:"newspapers"`
	Articles   []Article `json:"articles,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Document.
func (d *Document) UnmarshalJSON(data []byte) error {
	type Alias Document
	if err := json.Unmarshal(data, (*Alias)(d)); err != nil {
		return err
	}
	extra, err := unknownKeys(data, reflect.TypeOf(Alias{}))
	if err != nil {
		return err
	}
	d.Extra = extra
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Document.
func (d Document) MarshalJSON() ([]byte, error) {
	type Alias Document
	return withExtra(Alias(d), d.Extra)
}

var jsonKeyCache sync.Map // reflect.Type -> map[string]bool

// jsonKeys lists the object keys encoding/json uses for the fields of t.
func jsonKeys(t reflect.Type) map[string]bool {
	if keys, ok := jsonKeyCache.Load(t); ok {
		return keys.(map[string]bool)
	}
	keys := map[string]bool{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		keys[name] = true
	}
	jsonKeyCache.Store(t, keys)
	return keys
}

// unknownKeys returns the members of the object in data that t has no field
// for, or nil when there are none.
func unknownKeys(data []byte, t reflect.Type) (map[string]json.RawMessage, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	known := jsonKeys(t)
	var extra map[string]json.RawMessage
	for k, v := range all {
		// encoding/json matches field names case-insensitively.
		if known[k] || knownFold(known, k) {
			continue
		}
		if extra == nil {
			extra = map[string]json.RawMessage{}
		}
		extra[k] = v
	}
	return extra, nil
}

func knownFold(known map[string]bool, key string) bool {
	for k := range known {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// withExtra encodes v and appends the extra members in key order. Keys the
// encoded value already has are skipped.
func withExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	base := bytes.TrimRight(buf.Bytes(), "\n")
	if len(extra) == 0 {
		return base, nil
	}

	known := jsonKeys(reflect.TypeOf(v))
	keys := make([]string, 0, len(extra))
	for k := range extra {
		if !known[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := append([]byte{}, base[:len(base)-1]...)
	empty := len(bytes.TrimSpace(out)) == 1
	for _, k := range keys {
		if !empty {
			out = append(out, ',')
		}
		empty = false
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		out = append(out, name...)
		out = append(out, ':')
		out = append(out, extra[k]...)
	}
	return append(out, '}'), nil
}
