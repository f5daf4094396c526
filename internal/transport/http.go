package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"collabchat/internal/common"
	"collabchat/internal/message"
)

// HTTPDurable talks to the REST surface of the backend. The auth token comes
// from the external session collaborator and rides every request as a bearer
// header.
type HTTPDurable struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPDurable(baseURL, token string) *HTTPDurable {
	return &HTTPDurable{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (d *HTTPDurable) FetchHistory(ctx context.Context, channelID string) ([]*message.Message, error) {
	var history []*message.Message
	err := d.do(ctx, "fetch_history", http.MethodGet,
		fmt.Sprintf("/channels/%s/messages", channelID), nil, &history)
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (d *HTTPDurable) Send(ctx context.Context, req SendRequest) (*message.Message, error) {
	var confirmed message.Message
	err := d.do(ctx, "send", http.MethodPost,
		fmt.Sprintf("/channels/%s/messages", req.ChannelID), req, &confirmed)
	if err != nil {
		return nil, err
	}
	return &confirmed, nil
}

func (d *HTTPDurable) Edit(ctx context.Context, messageID, body string) (*message.Message, error) {
	var confirmed message.Message
	payload := map[string]string{"body": body}
	err := d.do(ctx, "edit", http.MethodPut,
		"/messages/"+messageID, payload, &confirmed)
	if err != nil {
		return nil, err
	}
	return &confirmed, nil
}

func (d *HTTPDurable) Delete(ctx context.Context, messageID string) error {
	return d.do(ctx, "delete", http.MethodDelete, "/messages/"+messageID, nil, nil)
}

func (d *HTTPDurable) React(ctx context.Context, messageID, emoji string) error {
	payload := map[string]string{"emoji": emoji}
	return d.do(ctx, "react", http.MethodPost, "/messages/"+messageID+"/reactions", payload, nil)
}

func (d *HTTPDurable) Vote(ctx context.Context, messageID string, optionIDs []int) error {
	payload := map[string][]int{"option_ids": optionIDs}
	return d.do(ctx, "vote", http.MethodPost, "/messages/"+messageID+"/votes", payload, nil)
}

func (d *HTTPDurable) Star(ctx context.Context, messageID string, starred bool) error {
	payload := map[string]bool{"starred": starred}
	return d.do(ctx, "star", http.MethodPut, "/messages/"+messageID+"/star", payload, nil)
}

func (d *HTTPDurable) Report(ctx context.Context, messageID, reason string) error {
	payload := map[string]string{"reason": reason}
	return d.do(ctx, "report", http.MethodPost, "/messages/"+messageID+"/reports", payload, nil)
}

func (d *HTTPDurable) Upload(ctx context.Context, channelID, filename string, r io.Reader) (message.Attachment, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return message.Attachment{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return message.Attachment{}, err
	}
	if err := mw.Close(); err != nil {
		return message.Attachment{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		d.baseURL+fmt.Sprintf("/channels/%s/uploads", channelID), &buf)
	if err != nil {
		return message.Attachment{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+d.token)

	resp, err := d.client.Do(req)
	observeCall("upload", err)
	if err != nil {
		return message.Attachment{}, &common.NetworkError{Op: "upload", Err: err}
	}
	defer resp.Body.Close()

	if err := statusError("upload", resp.StatusCode); err != nil {
		return message.Attachment{}, err
	}
	var att message.Attachment
	if err := json.NewDecoder(resp.Body).Decode(&att); err != nil {
		return message.Attachment{}, &common.NetworkError{Op: "upload", Err: err}
	}
	return att, nil
}

func (d *HTTPDurable) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+d.token)

	resp, err := d.client.Do(req)
	observeCall(op, err)
	if err != nil {
		return &common.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if err := statusError(op, resp.StatusCode); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &common.NetworkError{Op: op, Err: err}
	}
	return nil
}

// statusError maps HTTP status codes onto the subsystem's error taxonomy.
func statusError(op string, code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return &common.AuthError{Op: op}
	case code == http.StatusBadRequest:
		return common.ErrEmptyContent
	case code == http.StatusRequestEntityTooLarge:
		return common.ErrPayloadTooLarge
	case code == http.StatusUnsupportedMediaType:
		return common.ErrUnsupportedType
	default:
		return &common.NetworkError{Op: op, Err: fmt.Errorf("unexpected status %d", code)}
	}
}
