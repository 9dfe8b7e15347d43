package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("PROTGRAPH_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	src := os.Getenv("SOURCE_URL")
	if src == "" {
		src = "https://raw.githubusercontent.com/weavebio/data-engineering-coding-challenge/main/data/Q9Y261.xml"
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	fmt.Println("1. Ingesting entry...")
	var run struct {
		RunID     string         `json:"run_id"`
		Accession string         `json:"accession"`
		Written   map[string]int `json:"written"`
	}
	if !sendRequest(baseURL, "POST", "/ingest", map[string]string{"source": src}, &run) {
		fmt.Println("FAILED: Ingest entry")
		os.Exit(1)
	}
	if run.Accession == "" || run.Written["protein"] != 1 {
		fmt.Printf("FAILED: Unexpected run result %+v\n", run)
		os.Exit(1)
	}
	fmt.Println("PASSED: Ingest entry")

	fmt.Println("2. Reading protein summary...")
	var summary struct {
		Relationships map[string]int64 `json:"relationships"`
	}
	if !sendRequest(baseURL, "GET", "/proteins/"+run.Accession, nil, &summary) {
		fmt.Println("FAILED: Protein summary")
		os.Exit(1)
	}
	if summary.Relationships["HAS_FULL_NAME"] == 0 {
		fmt.Printf("FAILED: Protein has no full name relationship: %v\n", summary.Relationships)
		os.Exit(1)
	}
	fmt.Println("PASSED: Protein summary")
}

func sendRequest(baseURL, method, endpoint string, payload, out interface{}) bool {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}
	fmt.Printf("Response: %s\n", string(respBody))

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			fmt.Printf("Error decoding response: %v\n", err)
			return false
		}
	}
	return true
}
