package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Amity808/crypt-bappgift/utils"
)

type Plunk struct {
	HttpClient *http.Client
	Config     *utils.Config
}

type EmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ClaimEmailData feeds the claim email template.
type ClaimEmailData struct {
	RecipientName string
	SenderAddress string
	ClaimLink     string
	ClaimToken    string
	Amount        string
	Currency      string
	Message       string
	Theme         string
}

const claimTemplate = "static/templates/claim_gift.html"

func NewPlunk(config *utils.Config) *Plunk {
	return &Plunk{
		HttpClient: &http.Client{},
		Config:     config,
	}
}

func (s *Plunk) makeRequest(method, endpoint string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, s.Config.PlunkBaseUrl+endpoint, reqBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+s.Config.PlunkApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, errors.New(string(respBody))
	}

	return respBody, nil
}

func (s *Plunk) SendEmail(to, subject, body string) error {
	email := EmailRequest{
		To:      to,
		Subject: subject,
		Body:    body,
	}

	_, err := s.makeRequest("POST", "/send", email)
	return err
}

// SendClaimEmail renders the claim template and delivers it to the recipient.
// The personal message doubles as the subject line when present.
func (s *Plunk) SendClaimEmail(to string, data ClaimEmailData) error {
	body, err := utils.RenderEmailTemplate(claimTemplate, data)
	if err != nil {
		return err
	}

	subject := data.Message
	if subject == "" {
		subject = "You've received a crypto gift card!"
	}

	return s.SendEmail(to, subject, body)
}
