/*
Package executor performs the outbound HTTP call for a send.

The caller builds a Call (method, URL, body text, merged headers) and
records the start time; Execute issues the request and folds every outcome
into a types.Response:

  - success: status, ok flag (2xx-3xx), the JSON body re-serialized with
    two-space indentation, the response headers as an indented JSON object
    and the elapsed milliseconds
  - failure (transport error, unreadable or non-JSON body): status from the
    error when it implements StatusCoder, otherwise 500; the error message as
    body; ok=false; elapsed time up to the failure; no headers

Execute never returns an error. Nothing is retried.

# Example Usage

	start := time.Now()
	resp := executor.Execute(ctx, executor.NewClient(0), executor.Call{
		Method:  types.MethodPost,
		URL:     "https://api.example.com/users",
		Body:    `{"name": "John Doe"}`,
		Headers: map[string]string{"content-type": "application/json"},
	}, start)

	fmt.Println(resp.Code, executor.FormatDuration(*resp.Time))
*/
package executor
