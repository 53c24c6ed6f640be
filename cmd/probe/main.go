package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Playground API Smoke Test\n")

	// 1. Sign up a throwaway account
	color.Yellow("\n[AUTH] 1. Sign Up")
	signupReq := map[string]interface{}{
		"email":     "probe@example.com",
		"password":  "probe-secret",
		"full_name": "API Probe",
	}
	resp, body, err := sendRequest("POST", "/auth/signup", "", signupReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var signupResp map[string]interface{}
	json.Unmarshal(body, &signupResp)
	prettyPrint(signupResp)

	// 2. Sign in
	color.Yellow("\n[AUTH] 2. Sign In")
	signinReq := map[string]interface{}{
		"email":    "probe@example.com",
		"password": "probe-secret",
	}
	resp, body, err = sendRequest("POST", "/auth/signin", "", signinReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	var signinResp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	json.Unmarshal(body, &signinResp)
	token := signinResp.Data.AccessToken
	if token == "" {
		color.Red("No access token in sign-in response")
		os.Exit(1)
	}

	// 3. Malformed email: the request should be a silent no-op
	color.Yellow("\n[AUTH] 3. Sign In with malformed email (expect skip)")
	resp, body, err = sendRequest("POST", "/auth/signin", "", map[string]interface{}{
		"email":    "not-an-email",
		"password": "whatever",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var skipResp map[string]interface{}
	json.Unmarshal(body, &skipResp)
	prettyPrint(skipResp)

	// 4. Save a project snapshot
	color.Yellow("\n[PROJECT] 4. Save Snapshot")
	saveReq := map[string]interface{}{
		"title": "Probe Pen",
		"html":  "<h1>hello</h1>",
		"css":   "h1 { color: teal; }",
		"js":    "console.log('hi')",
	}
	resp, body, err = sendRequest("POST", "/project/v1", token, saveReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var saveResp map[string]interface{}
	json.Unmarshal(body, &saveResp)
	prettyPrint(saveResp)

	// 5. List projects
	color.Yellow("\n[PROJECT] 5. List Projects")
	resp, body, err = sendRequest("GET", "/project/v1", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var listResp map[string]interface{}
	json.Unmarshal(body, &listResp)
	prettyPrint(listResp)

	color.Cyan("\n✅ Smoke test finished")
}
