package fabric

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// infraVLANDn is the managed object whose encapsulation carries the VLAN
// the fabric uses for node/infrastructure traffic.
const infraVLANDn = "uni/infra/attentp-default/provacc/rsfuncToEpg-[uni/tn-infra/ap-access/epg-default]"

// APIC talks to a fabric controller over its REST API. Sessions are
// token-based: the first request logs in and subsequent requests reuse the
// session cookie. The zero value is not usable; construct with New.
//
// APIC performs no retries and sets no timeouts of its own; callers
// wanting resilience wrap the HTTP client they pass in.
type APIC struct {
	baseURL  string
	username string
	password string
	hc       *http.Client
	token    string
}

// Option configures an APIC client.
type Option func(*APIC)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *APIC) { a.hc = hc }
}

// WithBaseURL replaces the https://host base URL, e.g. for test servers.
func WithBaseURL(u string) Option {
	return func(a *APIC) { a.baseURL = strings.TrimSuffix(u, "/") }
}

// New returns a client for the controller at host. Controllers ship with
// self-signed certificates, so server certificate verification is off by
// default; pass WithHTTPClient to change that.
func New(host, username, password string, opts ...Option) *APIC {
	a := &APIC{
		baseURL:  "https://" + host,
		username: username,
		password: password,
		hc: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402
			},
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// apicResponse is the REST envelope wrapping every controller reply.
type apicResponse struct {
	TotalCount string                  `json:"totalCount"`
	Imdata     []map[string]apicObject `json:"imdata"`
}

type apicObject struct {
	Attributes map[string]any `json:"attributes"`
}

// attributes returns the attribute map of the first object in the reply,
// or nil when the reply carries no objects.
func (r *apicResponse) attributes() map[string]any {
	for _, entry := range r.Imdata {
		for _, obj := range entry {
			return obj.Attributes
		}
	}
	return nil
}

// errorText extracts the controller's error message, if any.
func (r *apicResponse) errorText() string {
	for _, entry := range r.Imdata {
		if obj, ok := entry["error"]; ok {
			if text, ok := obj.Attributes["text"].(string); ok {
				return text
			}
		}
	}
	return ""
}

// InfraVLAN reads the VLAN currently configured for node/infrastructure
// traffic on the fabric.
func (a *APIC) InfraVLAN(ctx context.Context) (int, error) {
	attrs, err := a.getMo(ctx, infraVLANDn)
	if err != nil {
		return 0, err
	}
	encap, _ := attrs["encap"].(string)
	vlan, err := strconv.Atoi(strings.TrimPrefix(encap, "vlan-"))
	if err != nil {
		return 0, fmt.Errorf("unexpected infra VLAN encapsulation %q", encap)
	}
	return vlan, nil
}

// AttachmentProfile returns the attributes of the named
// attachment-entity-profile, or nil when it is not configured.
func (a *APIC) AttachmentProfile(ctx context.Context, name string) (map[string]any, error) {
	return a.getMo(ctx, "uni/infra/attentp-"+name)
}

// VRF returns the attributes of the named VRF, or nil when it is not
// configured.
func (a *APIC) VRF(ctx context.Context, tenant, name string) (map[string]any, error) {
	return a.getMo(ctx, fmt.Sprintf("uni/tn-%s/ctx-%s", tenant, name))
}

// L3Out returns the attributes of the named L3-out, or nil when it is not
// configured.
func (a *APIC) L3Out(ctx context.Context, tenant, name string) (map[string]any, error) {
	return a.getMo(ctx, fmt.Sprintf("uni/tn-%s/out-%s", tenant, name))
}

// Provision writes every object of the descriptor to the fabric.
func (a *APIC) Provision(ctx context.Context, d Descriptor) error {
	for _, mo := range d.Mos {
		if err := a.postMo(ctx, mo.Path, mo.Body); err != nil {
			return fmt.Errorf("failed to provision %s: %w", mo.Path, err)
		}
	}
	return nil
}

// Unprovision deletes the descriptor's cluster-scoped objects from the
// fabric. Shared infrastructure objects the descriptor only annotates,
// such as the attachment-entity-profile, are left in place.
func (a *APIC) Unprovision(ctx context.Context, d Descriptor) error {
	for _, mo := range d.Mos {
		if mo.Shared {
			continue
		}
		if err := a.deleteMo(ctx, mo.Path); err != nil {
			return fmt.Errorf("failed to unprovision %s: %w", mo.Path, err)
		}
	}
	return nil
}

// login opens a session and stores the session token.
func (a *APIC) login(ctx context.Context) error {
	body := map[string]any{
		"aaaUser": map[string]any{
			"attributes": map[string]any{
				"name": a.username,
				"pwd":  a.password,
			},
		},
	}
	resp, err := a.do(ctx, http.MethodPost, a.baseURL+"/api/aaaLogin.json", body)
	if err != nil {
		return err
	}
	attrs := resp.attributes()
	token, _ := attrs["token"].(string)
	if token == "" {
		return fmt.Errorf("fabric login reply carried no session token")
	}
	a.token = token
	return nil
}

func (a *APIC) ensureSession(ctx context.Context) error {
	if a.token != "" {
		return nil
	}
	return a.login(ctx)
}

func (a *APIC) getMo(ctx context.Context, dn string) (map[string]any, error) {
	if err := a.ensureSession(ctx); err != nil {
		return nil, err
	}
	resp, err := a.do(ctx, http.MethodGet, a.moURL(dn), nil)
	if err != nil {
		return nil, err
	}
	return resp.attributes(), nil
}

func (a *APIC) postMo(ctx context.Context, dn string, body map[string]any) error {
	if err := a.ensureSession(ctx); err != nil {
		return err
	}
	_, err := a.do(ctx, http.MethodPost, a.moURL(dn), body)
	return err
}

func (a *APIC) deleteMo(ctx context.Context, dn string) error {
	if err := a.ensureSession(ctx); err != nil {
		return err
	}
	_, err := a.do(ctx, http.MethodDelete, a.moURL(dn), nil)
	return err
}

func (a *APIC) moURL(dn string) string {
	return a.baseURL + "/api/mo/" + dn + ".json"
}

// do performs one request/response exchange and decodes the controller's
// reply envelope. Non-2xx statuses become an *APIError carrying the
// controller's error text when one is present.
func (a *APIC) do(ctx context.Context, method, url string, body map[string]any) (*apicResponse, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, err
	}
	if a.token != "" {
		req.AddCookie(&http.Cookie{Name: "APIC-cookie", Value: a.token})
	}

	httpResp, err := a.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	var resp apicResponse
	if decodeErr := json.NewDecoder(httpResp.Body).Decode(&resp); decodeErr != nil && httpResp.StatusCode < 300 {
		return nil, fmt.Errorf("failed to decode fabric reply: %w", decodeErr)
	}

	if httpResp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: httpResp.StatusCode,
			URL:        url,
			Message:    resp.errorText(),
		}
	}
	return &resp, nil
}
