// Package catalogai embeds the product query pipeline in a Go program:
// query interpretation (LLM with a synonym-table fallback), catalog search
// and product field validation, without running the HTTP server.
//
//	client, _ := catalogai.New(ctx,
//	    catalogai.WithSeedFile("config/catalog.yaml"),
//	    catalogai.WithOpenAI(os.Getenv("OPENAI_API_KEY"), "gpt-4o-mini"),
//	)
//	defer client.Close()
//
//	res, _ := client.Search(ctx, "Apple marka pahalı kulaklık", 10)
//	for _, p := range res.Products {
//	    fmt.Println(p.Title, p.Price)
//	}
//
// Without a model provider every call is answered by the deterministic
// fallback; Interpretation.Provenance tells which tier produced the filters.
package catalogai
