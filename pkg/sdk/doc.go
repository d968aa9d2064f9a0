// Package rentprice embeds the Manhattan rent price model in a Go program.
//
// The client loads the listings dataset, fits the linear model once and then
// answers predictions in process, without running the HTTP service.
//
//	client, err := rentprice.New(ctx,
//	    rentprice.WithSource("testdata/manhattan.csv"),
//	    rentprice.WithSeed(6),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	price, _ := client.Predict(ctx, rentprice.Listing{Bedrooms: 1, Bathrooms: 1, Size: 620})
//
// A Valkey or Redis instance can hold the downloaded dataset between runs:
//
//	rentprice.New(ctx, rentprice.WithValkey("localhost:6379", ""))
package rentprice
