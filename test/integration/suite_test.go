//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
)

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	baseURL      string
	client       *http.Client
	response     *http.Response
	responseBody []byte
	saved        map[string]string
}

func newTestContext(baseURL string) *testContext {
	return &testContext{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		saved: map[string]string{},
	}
}

// reset clears response state and remembered values between scenarios.
func (tc *testContext) reset() {
	tc.response = nil
	tc.responseBody = nil
	tc.saved = map[string]string{}
}

// scenarioInitializer registers step definitions against baseURL.
func scenarioInitializer(baseURL string) func(*godog.ScenarioContext) {
	return func(ctx *godog.ScenarioContext) {
		tc := newTestContext(baseURL)

		ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
			tc.reset()
			return ctx, nil
		})

		ctx.Step(`^the service is running$`, tc.theServiceIsRunning)
		ctx.Step(`^I request GET "([^"]*)"$`, tc.iRequestGET)
		ctx.Step(`^I POST to "([^"]*)" with:$`, tc.iPOSTWith)
		ctx.Step(`^I remember the response field "([^"]*)" as "([^"]*)"$`, tc.iRememberField)
		ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
		ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
		ctx.Step(`^the response should not contain "([^"]*)"$`, tc.theResponseShouldNotContain)
		ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
		ctx.Step(`^the response should list (\d+) violations?$`, tc.theResponseShouldListViolations)
	}
}

// expand replaces {name} with values remembered earlier in the scenario.
func (tc *testContext) expand(s string) string {
	for name, value := range tc.saved {
		s = strings.ReplaceAll(s, "{"+name+"}", value)
	}

	return s
}

func (tc *testContext) theServiceIsRunning() error {
	if err := tc.do(http.MethodGet, "/-/live", nil); err != nil {
		return fmt.Errorf("service is not running at %s: %w", tc.baseURL, err)
	}

	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status %d", tc.response.StatusCode)
	}

	return nil
}

func (tc *testContext) iRequestGET(path string) error {
	return tc.do(http.MethodGet, tc.expand(path), nil)
}

func (tc *testContext) iPOSTWith(path string, body *godog.DocString) error {
	return tc.do(http.MethodPost, tc.expand(path), []byte(tc.expand(body.Content)))
}

func (tc *testContext) do(method, path string, body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, tc.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp

	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return nil
}

// field resolves a dotted path such as "error.code" in the JSON body.
func (tc *testContext) field(path string) (any, error) {
	var doc any
	if err := json.Unmarshal(tc.responseBody, &doc); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w. Body: %s", err, tc.responseBody)
	}

	for _, part := range strings.Split(path, ".") {
		obj, ok := doc.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object", path, part)
		}

		if doc, ok = obj[part]; !ok {
			return nil, fmt.Errorf("field %q not found. Body: %s", path, tc.responseBody)
		}
	}

	return doc, nil
}

func (tc *testContext) iRememberField(path, name string) error {
	v, err := tc.field(path)
	if err != nil {
		return err
	}

	tc.saved[name] = fmt.Sprint(v)

	return nil
}

func (tc *testContext) theResponseStatusShouldBe(expectedCode int) error {
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}

	if tc.response.StatusCode != expectedCode {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedCode, tc.response.StatusCode, string(tc.responseBody))
	}

	return nil
}

func (tc *testContext) theResponseShouldContain(text string) error {
	if !bytes.Contains(tc.responseBody, []byte(text)) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseShouldNotContain(text string) error {
	if bytes.Contains(tc.responseBody, []byte(text)) {
		return fmt.Errorf("response body contains %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseFieldShouldBe(path, expected string) error {
	v, err := tc.field(path)
	if err != nil {
		return err
	}

	// JSON numbers decode as float64; compare integers without a fraction.
	got := fmt.Sprint(v)
	if f, ok := v.(float64); ok {
		got = strconv.FormatFloat(f, 'f', -1, 64)
	}

	if got != tc.expand(expected) {
		return fmt.Errorf("field %q: expected %q, got %q", path, expected, got)
	}

	return nil
}

func (tc *testContext) theResponseShouldListViolations(count int) error {
	v, err := tc.field("error.violations")
	if err != nil {
		return err
	}

	violations, ok := v.([]any)
	if !ok || len(violations) != count {
		return fmt.Errorf("expected %d violations. Body: %s", count, tc.responseBody)
	}

	return nil
}

// TestFeatures runs the GoDog BDD suite against BASE_URL, or against an
// in-process instance when BASE_URL is unset.
func TestFeatures(t *testing.T) {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		cfg, err := loadTestConfig()
		if err != nil {
			t.Fatalf("loading config: %v", err)
		}

		h := newHarness(cfg)
		t.Cleanup(h.Close)

		baseURL = h.URL()
	}

	suite := godog.TestSuite{
		ScenarioInitializer: scenarioInitializer(baseURL),
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
