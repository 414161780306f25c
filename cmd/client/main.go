package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	pkgmodel "gitlab.com/dirk.krummacker/relationship-service/pkg/model"
)

const serverPort = 8080

// Usage example on the command line:
// > go run main.go -account=3 -author=7 -contact=29
func main() {
	accountID := flag.Int64("account", 1, "the account owning the contact")
	authorID := flag.Int64("author", 1, "the user performing the updates")
	contactID := flag.Int64("contact", 1, "the contact whose birthday is updated")
	flag.Parse()

	fmt.Println()
	fmt.Println("  Requests   Unknown  AgeBased   Partial  Complete       GET ")
	fmt.Println("-------------------------------------------------------------")
	sizes := []int{100, 500, 1000, 5000}
	modes := []func() pkgmodel.BirthdayUpdate{
		func() pkgmodel.BirthdayUpdate {
			return pkgmodel.BirthdayUpdate{IsDateKnown: boolPtr(false)}
		},
		func() pkgmodel.BirthdayUpdate {
			return pkgmodel.BirthdayUpdate{IsDateKnown: boolPtr(true), IsAgeBased: boolPtr(true), Age: intPtr(46)}
		},
		func() pkgmodel.BirthdayUpdate {
			return pkgmodel.BirthdayUpdate{IsDateKnown: boolPtr(true), Day: intPtr(9), Month: intPtr(11), AddReminder: boolPtr(true)}
		},
		func() pkgmodel.BirthdayUpdate {
			return pkgmodel.BirthdayUpdate{IsDateKnown: boolPtr(true), Day: intPtr(9), Month: intPtr(11), Year: intPtr(1980), AddReminder: boolPtr(true)}
		},
	}
	for _, loops := range sizes {
		fmt.Printf("%10d", loops)
		for _, mode := range modes {
			update := mode()
			update.AccountId = accountID
			update.AuthorId = authorID
			jsonBody, err := json.Marshal(update)
			if err != nil {
				fmt.Println("could not marshal JSON", err)
				panic(err)
			}
			var duration int64
			for i := 0; i < loops; i++ {
				duration += sendRequest(http.MethodPut, *contactID, bytes.NewReader(jsonBody))
			}
			fmt.Printf("%10d", duration/int64(loops*1000))
		}
		var duration int64
		for i := 0; i < loops; i++ {
			duration += sendRequest(http.MethodGet, *contactID, nil)
		}
		fmt.Printf("%10d", duration/int64(loops*1000))
		fmt.Println()
	}
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }

func sendRequest(method string, contactID int64, bodyReader io.Reader) int64 {
	requestURL := fmt.Sprintf("http://localhost:%d/contacts/%d/birthday", serverPort, contactID)
	req, err := http.NewRequest(method, requestURL, bodyReader)
	if err != nil {
		fmt.Println("could not create request", err)
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	before := time.Now().UnixNano()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("error making http request", err)
		panic(err)
	}
	defer res.Body.Close()
	if _, err := io.ReadAll(res.Body); err != nil {
		fmt.Println("could not read response body", err)
		panic(err)
	}
	if res.StatusCode != http.StatusOK {
		fmt.Println("unexpected status", res.Status)
	}
	after := time.Now().UnixNano()
	return after - before
}
