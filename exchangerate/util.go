package exchangerate

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// fetchInfo captures transport diagnostics of one provider request, kept as
// history metadata.
type fetchInfo struct {
	status  int
	elapsed time.Duration
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data any) (fetchInfo, error) {
	start := time.Now()
	resp, err := client.Get(addr)
	if err != nil {
		return fetchInfo{}, err
	}
	defer resp.Body.Close()
	info := fetchInfo{
		status:  resp.StatusCode,
		elapsed: time.Since(start),
	}
	if resp.StatusCode != http.StatusOK {
		return info, fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return info, err
	}
	return info, json.Unmarshal(body, data)
}
