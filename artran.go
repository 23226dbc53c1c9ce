// Package artran translates article records field by field through an external
// translation provider, memoizing every (text, source, target) triple in a
// bounded cache.
//
// The cache loads missing translations on demand, issues at most one provider
// call per key at a time and evicts the least recently used entry once full.
// The record translator splits a record into title, text, description and
// keywords, translates each through the cache and reassembles the record;
// a field that fails is left empty and logged, never failing the record.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/artran"
//	    "github.com/ZaguanLabs/artran/provider"
//	)
//
//	func main() {
//	    p, err := provider.NewGoogleProvider(ctx, provider.GoogleConfig{
//	        APIKey: os.Getenv("GOOGLE_API_KEY"),
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    c := artran.NewTranslationCache(p, artran.WithCapacity(500))
//	    t := artran.NewRecordTranslator(c)
//
//	    out, err := t.Translate(ctx, &artran.Record{
//	        Language: "es",
//	        Title:    "Hola",
//	        Keywords: []string{"uno", "dos"},
//	    }, "en")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(out.Title) // Hello
//	}
package artran
