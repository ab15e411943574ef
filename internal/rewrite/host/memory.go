package host

// MemoryHeaderMap is a minimal, dependency-free HeaderMap used by the
// core's unit tests to exercise end-to-end rewrite scenarios without
// standing up a real net/http request. Values preserve insertion order per
// header name, the way Envoy's HeaderMap does. Header names are compared
// exactly as given: unlike the net/http adapters, it does not fold case.
type MemoryHeaderMap struct {
	values map[string][]string
	path   string
	isReq  bool
}

// NewMemoryHeaderMap constructs an empty map. isRequest controls whether
// Path/SetPath are meaningful (request side) or always report absent
// (response side).
func NewMemoryHeaderMap(isRequest bool) *MemoryHeaderMap {
	return &MemoryHeaderMap{values: make(map[string][]string), isReq: isRequest}
}

// WithPath seeds the request's :path pseudo-header and returns the receiver
// for chaining in tests.
func (m *MemoryHeaderMap) WithPath(path string) *MemoryHeaderMap {
	m.path = path
	return m
}

// WithHeader seeds a header's initial values and returns the receiver for
// chaining in tests.
func (m *MemoryHeaderMap) WithHeader(name string, values ...string) *MemoryHeaderMap {
	m.values[name] = append([]string(nil), values...)
	return m
}

func (m *MemoryHeaderMap) GetAllAsCommaString(name string) (string, bool) {
	vs, ok := m.values[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	out := vs[0]
	for _, v := range vs[1:] {
		out += "," + v
	}
	return out, true
}

func (m *MemoryHeaderMap) Set(name, value string) {
	m.values[name] = []string{value}
}

func (m *MemoryHeaderMap) Append(name, value string) {
	m.values[name] = append(m.values[name], value)
}

func (m *MemoryHeaderMap) Path() (string, bool) {
	if !m.isReq || m.path == "" {
		return "", false
	}
	return m.path, true
}

func (m *MemoryHeaderMap) SetPath(path string) {
	if m.isReq {
		m.path = path
	}
}

// Values exposes the raw per-header value slice for assertions in tests.
func (m *MemoryHeaderMap) Values(name string) []string {
	return m.values[name]
}

// Names returns every header name currently set, in no particular order.
func (m *MemoryHeaderMap) Names() []string {
	names := make([]string, 0, len(m.values))
	for name := range m.values {
		names = append(names, name)
	}
	return names
}

// MemoryMetadataStore is a single-stream, single-goroutine-owned
// implementation of MetadataStore.
type MemoryMetadataStore struct {
	data map[string]map[string]string
}

// NewMemoryMetadataStore constructs an empty store.
func NewMemoryMetadataStore() *MemoryMetadataStore {
	return &MemoryMetadataStore{data: make(map[string]map[string]string)}
}

func (s *MemoryMetadataStore) Get(namespace, key string) (string, bool) {
	ns, ok := s.data[namespace]
	if !ok {
		return "", false
	}
	v, ok := ns[key]
	return v, ok
}

func (s *MemoryMetadataStore) Set(namespace, key, value string) {
	ns, ok := s.data[namespace]
	if !ok {
		ns = make(map[string]string)
		s.data[namespace] = ns
	}
	ns[key] = value
}
