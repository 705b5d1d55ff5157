package fabric

import "context"

// MockClient is a mock implementation of Client for tests. Nil function
// fields answer with zero values; call counters record every invocation so
// tests can assert which fabric operations a pipeline stage performed.
type MockClient struct {
	InfraVLANFunc         func(ctx context.Context) (int, error)
	AttachmentProfileFunc func(ctx context.Context, name string) (map[string]any, error)
	VRFFunc               func(ctx context.Context, tenant, name string) (map[string]any, error)
	L3OutFunc             func(ctx context.Context, tenant, name string) (map[string]any, error)
	ProvisionFunc         func(ctx context.Context, d Descriptor) error
	UnprovisionFunc       func(ctx context.Context, d Descriptor) error

	Calls map[string]int
}

func (m *MockClient) record(op string) {
	if m.Calls == nil {
		m.Calls = map[string]int{}
	}
	m.Calls[op]++
}

// TotalCalls returns the number of fabric operations performed.
func (m *MockClient) TotalCalls() int {
	n := 0
	for _, c := range m.Calls {
		n += c
	}
	return n
}

func (m *MockClient) InfraVLAN(ctx context.Context) (int, error) {
	m.record("InfraVLAN")
	if m.InfraVLANFunc != nil {
		return m.InfraVLANFunc(ctx)
	}
	return 0, nil
}

func (m *MockClient) AttachmentProfile(ctx context.Context, name string) (map[string]any, error) {
	m.record("AttachmentProfile")
	if m.AttachmentProfileFunc != nil {
		return m.AttachmentProfileFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockClient) VRF(ctx context.Context, tenant, name string) (map[string]any, error) {
	m.record("VRF")
	if m.VRFFunc != nil {
		return m.VRFFunc(ctx, tenant, name)
	}
	return nil, nil
}

func (m *MockClient) L3Out(ctx context.Context, tenant, name string) (map[string]any, error) {
	m.record("L3Out")
	if m.L3OutFunc != nil {
		return m.L3OutFunc(ctx, tenant, name)
	}
	return nil, nil
}

func (m *MockClient) Provision(ctx context.Context, d Descriptor) error {
	m.record("Provision")
	if m.ProvisionFunc != nil {
		return m.ProvisionFunc(ctx, d)
	}
	return nil
}

func (m *MockClient) Unprovision(ctx context.Context, d Descriptor) error {
	m.record("Unprovision")
	if m.UnprovisionFunc != nil {
		return m.UnprovisionFunc(ctx, d)
	}
	return nil
}
