package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
)

func registerHTTPSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeader)
	sc.Step(`^I send a (GET|DELETE) request to "([^"]*)"$`, iSendRequestWithoutBody)
	sc.Step(`^I send a (POST|PATCH|PUT) request to "([^"]*)" with body:$`, iSendRequestWithBody)
	sc.Step(`^I send a (POST|PATCH|PUT) request to "([^"]*)"$`, iSendRequestWithoutBody)
	sc.Step(`^I store the response field "([^"]*)"$`, iStoreResponseField)
}

func registerAssertionSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	sc.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	sc.Step(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
	sc.Step(`^the response body should contain "([^"]*)"$`, theResponseBodyShouldContain)
}

func iSetHeader(ctx context.Context, name, value string) error {
	tc := testContextFrom(ctx)
	tc.requestHeaders[name] = value
	return nil
}

func iSendRequestWithoutBody(ctx context.Context, method, path string) error {
	return sendRequest(ctx, method, path, "")
}

func iSendRequestWithBody(ctx context.Context, method, path string, body *godog.DocString) error {
	return sendRequest(ctx, method, path, body.Content)
}

func sendRequest(ctx context.Context, method, path, body string) error {
	tc := testContextFrom(ctx)
	path = tc.substitute(path)
	body = tc.substitute(body)

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, tc.server.URL+path, reader)
	if err != nil {
		return err
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}
	for name, value := range tc.requestHeaders {
		req.Header.Set(name, value)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.responseStatus = resp.StatusCode
	tc.responseBody, err = io.ReadAll(resp.Body)
	return err
}

// substitute replaces placeholders with values captured earlier in the
// scenario so features can chain requests.
func (tc *TestContext) substitute(s string) string {
	s = strings.ReplaceAll(s, "{last_id}", tc.lastID)
	s = strings.ReplaceAll(s, "{access_token}", tc.accessToken)
	s = strings.ReplaceAll(s, "{refresh_token}", tc.refreshToken)
	return s
}

func iStoreResponseField(ctx context.Context, path string) error {
	tc := testContextFrom(ctx)
	value, err := tc.lookupField(path)
	if err != nil {
		return err
	}
	tc.lastID = fmt.Sprint(value)
	return nil
}

func theResponseStatusShouldBe(ctx context.Context, expected int) error {
	tc := testContextFrom(ctx)
	if tc.responseStatus != expected {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expected, tc.responseStatus, tc.responseBody)
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, path, expected string) error {
	tc := testContextFrom(ctx)
	value, err := tc.lookupField(path)
	if err != nil {
		return err
	}
	actual := fmt.Sprint(value)
	if f, ok := value.(float64); ok && f == float64(int64(f)) {
		actual = strconv.FormatInt(int64(f), 10)
	}
	if actual != expected {
		return fmt.Errorf("expected field %q to be %q, got %q", path, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, path string) error {
	tc := testContextFrom(ctx)
	_, err := tc.lookupField(path)
	return err
}

func theResponseFieldShouldHaveItems(ctx context.Context, path string, count int) error {
	tc := testContextFrom(ctx)
	value, err := tc.lookupField(path)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field %q is not an array", path)
	}
	if len(items) != count {
		return fmt.Errorf("expected field %q to have %d items, got %d", path, count, len(items))
	}
	return nil
}

func theResponseBodyShouldContain(ctx context.Context, expected string) error {
	tc := testContextFrom(ctx)
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("expected body to contain %q, got %s", expected, tc.responseBody)
	}
	return nil
}

// lookupField resolves a dotted path like "transactions.0.amount"
// against the last JSON response.
func (tc *TestContext) lookupField(path string) (any, error) {
	var parsed any
	if err := json.Unmarshal(tc.responseBody, &parsed); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w (body: %s)", err, tc.responseBody)
	}

	current := parsed
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("field %q not found in response (body: %s)", path, tc.responseBody)
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("invalid array index %q in path %q", segment, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("cannot descend into field %q at segment %q", path, segment)
		}
	}
	return current, nil
}

func registerAuthSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I am authenticated$`, iAmAuthenticated)
	sc.Step(`^I am authenticated as "([^"]*)"$`, iAmAuthenticatedAs)
	sc.Step(`^a registered user "([^"]*)" with password "([^"]*)"$`, aRegisteredUser)
}

func iAmAuthenticated(ctx context.Context) error {
	return iAmAuthenticatedAs(ctx, fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8]))
}

func iAmAuthenticatedAs(ctx context.Context, email string) error {
	tc := testContextFrom(ctx)
	if err := registerUser(ctx, tc, email, "Sup3rSecret!pass"); err != nil {
		return err
	}
	accessToken, err := tc.lookupField("access_token")
	if err != nil {
		return err
	}
	refreshToken, err := tc.lookupField("refresh_token")
	if err != nil {
		return err
	}
	tc.accessToken = fmt.Sprint(accessToken)
	tc.refreshToken = fmt.Sprint(refreshToken)
	return nil
}

func aRegisteredUser(ctx context.Context, email, password string) error {
	tc := testContextFrom(ctx)
	if err := registerUser(ctx, tc, email, password); err != nil {
		return err
	}
	tc.responseStatus = 0
	tc.responseBody = nil
	return nil
}

func registerUser(ctx context.Context, tc *TestContext, email, password string) error {
	body := fmt.Sprintf(`{"email": %q, "name": "Test User", "password": %q, "default_currency": "NGN"}`, email, password)
	if err := sendRequest(ctx, http.MethodPost, "/api/v1/auth/register", body); err != nil {
		return err
	}
	if tc.responseStatus != http.StatusCreated {
		return fmt.Errorf("registration failed with status %d: %s", tc.responseStatus, tc.responseBody)
	}
	return nil
}
