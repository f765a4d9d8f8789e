// Package rally provides a client for the Rally (RallyDev) web services API.
//
// The client authenticates with HTTP basic auth, scopes requests to an
// optional workspace and strips the OperationResult, CreateResult and
// QueryResult envelopes Rally wraps around every payload.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := rally.NewClient(ctx, "me@example.com", password, logger,
//		rally.WithWorkspace("/workspace/1234"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	stories, err := client.Find(ctx, "story", `(ScheduleState = "Defined")`,
//		rally.WithOrder("FormattedID"),
//	)
//
// Type names are case-insensitive and friendly aliases are translated, so
// "Story" and "userstory" both address hierarchicalrequirement.
//
// # Error Handling
//
//   - TransportError: the request produced no HTTP response
//   - HTTPStatusError: non-2xx status, with IsNotFound and IsUnauthorized helpers
//   - APIError: the envelope reported Errors
//   - APIWarning: the envelope reported Warnings only
//
// Both APIError and APIWarning match errors.Is(err, ErrAPI).
//
// A Client may be shared between goroutines; SetWorkspace only affects
// requests built after it returns.
package rally
