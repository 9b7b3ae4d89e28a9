// Package client provides a small HTTP client built on [net/http] that
// targets a single host and reports failures as [NetworkError] values.
//
// # Building a Client
//
// A [Client] targets one scheme and host. Use [New] with functional options:
//
//	c, err := client.New(client.HTTPS, "api.example.com",
//		client.WithTimeout(10*time.Second),
//		client.WithToken("Bearer abc"),
//	)
//
// # Making Requests
//
// Describe the target with an [Endpoint] and send it with a [Method]:
//
//	ep := client.NewEndpoint("/v1/items", client.QueryParam{Name: "page", Value: "2"})
//	body, resp, err := c.Request(ctx, client.GET, ep, nil, nil)
//
// The body is returned as raw bytes; decoding it is left to the caller.
//
// # Uploading Files
//
// [Client.Upload] POSTs the payload as the whole request body. The
// Content-Type comes from the [FileType] and the file name travels in the
// X-Filename header:
//
//	_, _, err = c.Upload(ctx, client.NewEndpoint("/upload"), "avatar", client.PNG, data, nil,
//		client.WithProgress(func(ev progress.Event) { fmt.Println(ev.Fraction()) }),
//	)
//
// # Errors
//
// Every failure is a *[NetworkError]. Branch with errors.Is:
//
//	switch {
//	case errors.Is(err, client.ErrServerError):
//	case errors.Is(err, client.ErrTimedOut):
//	case errors.Is(err, client.ErrCannotConnectToHost):
//	}
//
// Nothing is retried.
package client
