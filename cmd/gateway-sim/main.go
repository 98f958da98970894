// Command gateway-sim dials a running USSD service the way a mobile gateway
// would: it keeps one session ID for the whole conversation, re-sends the
// full input history on every hop, and fires the end-of-session notification
// when the conversation terminates.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avvvet/ussdflow/internal/ussd"
)

func main() {
	var (
		baseURL     string
		phoneNumber string
		serviceCode string
		networkCode string
	)
	flag.StringVar(&baseURL, "addr", "http://localhost:4949", "base URL of the USSD service")
	flag.StringVar(&phoneNumber, "phone", "+254700123456", "subscriber phone number")
	flag.StringVar(&serviceCode, "service", "*384*1234#", "dialed service code")
	flag.StringVar(&networkCode, "network", "99999", "gateway network code")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}
	sessionID := uuid.NewString()
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("Dialing %s as %s (session %s)\n", serviceCode, phoneNumber, sessionID)
	fmt.Println("Press Ctrl-D to hang up.")

	start := time.Now()
	status := ussd.StatusIncomplete
	errorMessage := ""
	lastResponse := ""
	hops := 0
	var inputs []string

	for {
		text := strings.Join(inputs, ussd.PathDelimiter)
		body, err := dial(client, baseURL+"/ussd", sessionID, serviceCode, phoneNumber, networkCode, text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dial failed: %v\n", err)
			status = ussd.StatusFailed
			errorMessage = err.Error()
			break
		}
		hops++
		lastResponse = body

		switch {
		case strings.HasPrefix(body, "END "):
			printScreen(strings.TrimPrefix(body, "END "))
			fmt.Println("(session ended)")
			status = ussd.StatusSuccess
		case strings.HasPrefix(body, "CON "):
			printScreen(strings.TrimPrefix(body, "CON "))
		default:
			fmt.Fprintf(os.Stderr, "malformed response: %q\n", body)
			status = ussd.StatusFailed
			errorMessage = "malformed response"
		}
		if status != ussd.StatusIncomplete {
			break
		}

		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				fmt.Println("(hung up)")
				break
			}
			fmt.Fprintf(os.Stderr, "read input failed: %v\n", err)
			break
		}
		inputs = append(inputs, strings.TrimRight(line, "\r\n"))
	}

	// The real gateway reports every terminated session exactly once.
	notifyErr := notify(client, baseURL+"/ussd/notify", url.Values{
		"date":             {time.Now().Format("2006-01-02 15:04:05")},
		"sessionId":        {sessionID},
		"serviceCode":      {serviceCode},
		"networkCode":      {networkCode},
		"phoneNumber":      {phoneNumber},
		"status":           {string(status)},
		"cost":             {"0"},
		"durationInMillis": {strconv.FormatInt(time.Since(start).Milliseconds(), 10)},
		"hopsCount":        {strconv.Itoa(hops)},
		"input":            {strings.Join(inputs, ussd.PathDelimiter)},
		"lastAppResponse":  {lastResponse},
		"errorMessage":     {errorMessage},
	})
	if notifyErr != nil {
		fmt.Fprintf(os.Stderr, "notify failed: %v\n", notifyErr)
	}
	if status.Failed() {
		os.Exit(1)
	}
}

func dial(client *http.Client, endpoint, sessionID, serviceCode, phoneNumber, networkCode, text string) (string, error) {
	resp, err := client.PostForm(endpoint, url.Values{
		"sessionId":   {sessionID},
		"serviceCode": {serviceCode},
		"phoneNumber": {phoneNumber},
		"networkCode": {networkCode},
		"text":        {text},
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return string(body), nil
}

func notify(client *http.Client, endpoint string, form url.Values) error {
	resp, err := client.PostForm(endpoint, form)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func printScreen(message string) {
	fmt.Println(strings.Repeat("-", 40))
	fmt.Println(message)
	fmt.Println(strings.Repeat("-", 40))
}
