// Package client is a typed HTTP client for the Project Solar API. Each
// Client carries its own base URL and login token, so several instances with
// different credentials can live side by side in one process.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/domsolaire/solar-crm/internal/status"
)

// Client talks to one API server as one user. Zero value is not usable; use
// New.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to set timeouts
// or a recording transport in tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithToken sets a login token directly, skipping Login.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New builds a Client for the given base URL, e.g. "http://localhost:4000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// APIError is a non-2xx response, carrying the server's French error message
// when one was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// do sends one request and decodes the response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var em struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &em)
		return &APIError{StatusCode: resp.StatusCode, Message: em.Error}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// User is the sanitized account shape returned by the API.
type User struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginResp struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login exchanges credentials for a token and stores it on this Client only.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var resp loginResp
	err := c.do(ctx, http.MethodPost, "/api/users/login",
		map[string]string{"email": email, "password": password}, &resp)
	if err != nil {
		return User{}, err
	}
	c.token = resp.Token
	return resp.User, nil
}

// Token returns the token currently in use, empty before a successful Login.
func (c *Client) Token() string { return c.token }

// Project mirrors the API's project payload.
type Project struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	Type      string    `json:"type"`
	Power     string    `json:"power"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Comments  string    `json:"comments"`
	OwnerID   *uint64   `json:"owner_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectInput is the write shape for creating or replacing a project.
type ProjectInput struct {
	Name     string  `json:"name"`
	Address  string  `json:"address,omitempty"`
	Type     string  `json:"type,omitempty"`
	Power    string  `json:"power,omitempty"`
	Phone    string  `json:"phone,omitempty"`
	Email    string  `json:"email,omitempty"`
	Comments string  `json:"comments,omitempty"`
	OwnerID  *uint64 `json:"owner_id,omitempty"`
	Status   string  `json:"status,omitempty"`
}

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	err := c.do(ctx, http.MethodGet, "/api/projects", nil, &out)
	return out, err
}

func (c *Client) GetProject(ctx context.Context, id uint64) (Project, error) {
	var out Project
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateProject(ctx context.Context, in ProjectInput) (Project, error) {
	var out Project
	err := c.do(ctx, http.MethodPost, "/api/projects", in, &out)
	return out, err
}

func (c *Client) UpdateProject(ctx context.Context, id uint64, in ProjectInput) (Project, error) {
	var out Project
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/projects/%d", id), in, &out)
	return out, err
}

func (c *Client) DeleteProject(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), nil, nil)
}

// Step mirrors one entry of a project's timeline.
type Step struct {
	ID          uint64     `json:"id"`
	ProjectID   uint64     `json:"project_id"`
	Label       string     `json:"label"`
	StepDate    *time.Time `json:"step_date"`
	StepComment string     `json:"step_comment"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// StepInput is the write shape for adding a step.
type StepInput struct {
	Label       string  `json:"label"`
	StepDate    *string `json:"step_date,omitempty"`
	StepComment string  `json:"step_comment,omitempty"`
	Status      string  `json:"status,omitempty"`
}

func (c *Client) AddStep(ctx context.Context, projectID uint64, in StepInput) (Step, error) {
	var out Step
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/projects/%d/steps", projectID), in, &out)
	return out, err
}

func (c *Client) ListSteps(ctx context.Context, projectID uint64) ([]Step, error) {
	var out []Step
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d/steps", projectID), nil, &out)
	return out, err
}

func (c *Client) DeleteStep(ctx context.Context, projectID, stepID uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/projects/%d/steps/%d", projectID, stepID), nil, nil)
}

// CustomField mirrors one free-form annotation on a project.
type CustomField struct {
	ID         uint64    `json:"id"`
	ProjectID  uint64    `json:"project_id"`
	FieldName  string    `json:"field_name"`
	FieldValue string    `json:"field_value"`
	AddedBy    *uint64   `json:"added_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func (c *Client) AddCustomField(ctx context.Context, projectID uint64, name, value string) (CustomField, error) {
	var out CustomField
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/projects/%d/custom_fields", projectID),
		map[string]string{"field_name": name, "field_value": value}, &out)
	return out, err
}

func (c *Client) ListCustomFields(ctx context.Context, projectID uint64) ([]CustomField, error) {
	var out []CustomField
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d/custom_fields", projectID), nil, &out)
	return out, err
}

// UpdateCustomField rewrites one field; the id is global, no project scoping.
func (c *Client) UpdateCustomField(ctx context.Context, fieldID uint64, name, value string) (CustomField, error) {
	var out CustomField
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/projects/custom_fields/%d", fieldID),
		map[string]string{"field_name": name, "field_value": value}, &out)
	return out, err
}

func (c *Client) DeleteCustomField(ctx context.Context, fieldID uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/projects/custom_fields/%d", fieldID), nil, nil)
}

// Investor mirrors the investor master record; Role is only set on
// project-scoped listings.
type Investor struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Company   *string   `json:"company"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Notes     *string   `json:"notes"`
	Role      *string   `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// InvestorInput is the write shape for investors.
type InvestorInput struct {
	Name    string  `json:"name"`
	Company *string `json:"company,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

func (c *Client) ListInvestors(ctx context.Context) ([]Investor, error) {
	var out []Investor
	err := c.do(ctx, http.MethodGet, "/api/investors", nil, &out)
	return out, err
}

func (c *Client) CreateInvestor(ctx context.Context, in InvestorInput) (Investor, error) {
	var out Investor
	err := c.do(ctx, http.MethodPost, "/api/investors", in, &out)
	return out, err
}

func (c *Client) GetInvestor(ctx context.Context, id uint64) (Investor, error) {
	var out Investor
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/investors/%d", id), nil, &out)
	return out, err
}

func (c *Client) UpdateInvestor(ctx context.Context, id uint64, in InvestorInput) (Investor, error) {
	var out Investor
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/investors/%d", id), in, &out)
	return out, err
}

func (c *Client) DeleteInvestor(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/investors/%d", id), nil, nil)
}

// AttachInvestor links an investor to a project with an optional role.
func (c *Client) AttachInvestor(ctx context.Context, projectID, investorID uint64, role *string) error {
	body := map[string]any{"investor_id": investorID}
	if role != nil {
		body["role"] = *role
	}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/projects/%d/investors", projectID), body, nil)
}

// DetachInvestor removes the link; the pair's milestones survive.
func (c *Client) DetachInvestor(ctx context.Context, projectID, investorID uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/projects/%d/investors/%d", projectID, investorID), nil, nil)
}

func (c *Client) ListProjectInvestors(ctx context.Context, projectID uint64) ([]Investor, error) {
	var out []Investor
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d/investors", projectID), nil, &out)
	return out, err
}

// Milestone mirrors the API's milestone payload.
type Milestone struct {
	ID           uint64     `json:"id"`
	ProjectID    uint64     `json:"project_id"`
	InvestorID   uint64     `json:"investor_id"`
	Label        string     `json:"label"`
	DueDate      *time.Time `json:"due_date"`
	Status       *string    `json:"status"`
	Comment      *string    `json:"comment"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ProjectName  string     `json:"project_name,omitempty"`
	InvestorName string     `json:"investor_name,omitempty"`
}

// MilestoneInput is the write shape for creating a milestone. Status accepts
// either the canonical French label or the short code form ("payee"); it is
// normalized before sending.
type MilestoneInput struct {
	Label   string  `json:"label"`
	DueDate *string `json:"due_date,omitempty"`
	Status  *string `json:"status,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// MilestonePatch carries a partial update; nil fields are left untouched and
// pointers to "" clear the column.
type MilestonePatch struct {
	Label   *string `json:"label,omitempty"`
	DueDate *string `json:"due_date,omitempty"`
	Status  *string `json:"status,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

func normalizeStatus(s *string) *string {
	if s == nil || *s == "" {
		return s
	}
	label := status.ToLabel(*s)
	return &label
}

func milestonePath(projectID, investorID uint64) string {
	return fmt.Sprintf("/api/projects/%d/investors/%d/milestones", projectID, investorID)
}

func (c *Client) ListMilestones(ctx context.Context, projectID, investorID uint64) ([]Milestone, error) {
	var out []Milestone
	err := c.do(ctx, http.MethodGet, milestonePath(projectID, investorID), nil, &out)
	return out, err
}

func (c *Client) CreateMilestone(ctx context.Context, projectID, investorID uint64, in MilestoneInput) (Milestone, error) {
	in.Status = normalizeStatus(in.Status)
	var out Milestone
	err := c.do(ctx, http.MethodPost, milestonePath(projectID, investorID), in, &out)
	return out, err
}

// UpdateMilestone always goes through the scoped route, so the server
// rejects ids that do not belong to the pair.
func (c *Client) UpdateMilestone(ctx context.Context, projectID, investorID, id uint64, patch MilestonePatch) (Milestone, error) {
	patch.Status = normalizeStatus(patch.Status)
	var out Milestone
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("%s/%d", milestonePath(projectID, investorID), id), patch, &out)
	return out, err
}

func (c *Client) DeleteMilestone(ctx context.Context, projectID, investorID, id uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", milestonePath(projectID, investorID), id), nil, nil)
}

func (c *Client) UpcomingMilestones(ctx context.Context) ([]Milestone, error) {
	var out []Milestone
	err := c.do(ctx, http.MethodGet, "/api/milestones/upcoming", nil, &out)
	return out, err
}

func (c *Client) OverdueMilestones(ctx context.Context) ([]Milestone, error) {
	var out []Milestone
	err := c.do(ctx, http.MethodGet, "/api/milestones/overdue", nil, &out)
	return out, err
}

// InviteResult is the response of a share-link creation.
type InviteResult struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// Invite creates a share link for a project and queues the invitation email.
func (c *Client) Invite(ctx context.Context, projectID uint64, email string) (InviteResult, error) {
	var out InviteResult
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/projects/%d/invite", projectID),
		map[string]string{"email": email}, &out)
	return out, err
}

// PublicProject is the unauthenticated share-link view: the project fields
// at the root plus the timeline and custom fields.
type PublicProject struct {
	Project
	Steps        []Step        `json:"steps"`
	CustomFields []CustomField `json:"custom_fields"`
}

// PublicView fetches a shared project by token. No login token is needed or
// sent beyond what the Client already carries.
func (c *Client) PublicView(ctx context.Context, token string) (PublicProject, error) {
	var out PublicProject
	err := c.do(ctx, http.MethodGet, "/api/public/projects/"+token, nil, &out)
	return out, err
}

// ActivityEntry is one line of the dashboard feed.
type ActivityEntry struct {
	ProjectID uint64    `json:"project_id"`
	Message   string    `json:"message"`
	Date      time.Time `json:"date"`
}

func (c *Client) RecentActivity(ctx context.Context) ([]ActivityEntry, error) {
	var out []ActivityEntry
	err := c.do(ctx, http.MethodGet, "/api/activity/recent", nil, &out)
	return out, err
}
