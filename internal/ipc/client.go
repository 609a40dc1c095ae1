package ipc

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"resty.dev/v3"
)

func newClient() *resty.Client {
	path := SocketPath()

	client := resty.NewWithClient(&http.Client{
		Transport: &http.Transport{
			DialContext: func(_ context.Context, _, _ string) (net.Conn, error) {
				return net.Dial("unix", path)
			},
		},
	})

	client.SetBaseURL("http://zoomview")
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	client.SetHeader("User-Agent", "zoomview")
	return client
}

func SendStatus() (*StatusResponse, error) {
	client := newClient()
	defer client.Close()

	result := StatusResponse{}
	response, err := client.R().SetResult(&result).Get("/status")
	if err != nil {
		return nil, err
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error requesting status: %s", response.Status())
	}
	return &result, nil
}

func SendToggle() (*Response, error) {
	return post("/toggle", nil)
}

func SendFling(vx, vy float32) (*Response, error) {
	return post("/fling", FlingRequest{VelocityX: vx, VelocityY: vy})
}

func SendStop() (*Response, error) {
	return post("/stop", nil)
}

func post(path string, body any) (*Response, error) {
	client := newClient()
	defer client.Close()

	result := Response{}
	req := client.R().SetResult(&result)
	if body != nil {
		req.SetBody(body)
	}
	response, err := req.Post(path)
	if err != nil {
		return nil, err
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error sending %s: %s", path, response.Status())
	}
	return &result, nil
}
