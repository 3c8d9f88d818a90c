// Package grantsdk is the client SDK and shared wire contract for the
// grantlink service. The server's HTTP handlers and the SDK client both use
// the request/response types defined here, so the wire format lives in
// exactly one place.
//
// Typical issuing flow:
//
//	client := grantsdk.New("https://grantlink.internal", apiKey)
//	resp, err := client.IssueToken(ctx, grantsdk.TokenRequest{
//		Scope:     "unsubscribe",
//		ExpiresIn: 7 * 24 * 3600,
//		MaxUses:   1,
//		Payload:   map[string]any{"list": "newsletter"},
//	})
//	// resp.Link is ready to embed in an email.
//
// Embedding applications that guard their own endpoints only need
// Tokenise to build links and the types to read audit responses.
package grantsdk
