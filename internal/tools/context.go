package tools

// Request is the per-invocation context passed to a tool handler. It is
// created fresh for each invocation, owned exclusively by that invocation,
// and must not be retained past the handler's return.
//
// Credential and auth-descriptor fields are present only when the server
// declares a credential descriptor; access goes through capability-checked
// accessors rather than bare fields so an unsupported access is visible at
// the call site.
type Request struct {
	// Params is the validated tool input.
	Params any
	// Config is the validated user-configuration object. Empty when the
	// server declares no config fields.
	Config map[string]any
	// Env maps each declared required environment name to its value
	// resolved at request time. Empty when none are declared.
	Env map[string]string

	credential    string
	hasCredential bool
	auth          *AuthInfo
}

// NewRequest assembles a per-invocation context. hasCredential reflects
// whether the server declares a credential descriptor; when false the
// credential and auth values are unreachable through the accessors.
func NewRequest(params any, config map[string]any, env map[string]string, hasCredential bool, credential string, auth *AuthInfo) *Request {
	if config == nil {
		config = map[string]any{}
	}
	if env == nil {
		env = map[string]string{}
	}
	return &Request{
		Params:        params,
		Config:        config,
		Env:           env,
		credential:    credential,
		hasCredential: hasCredential,
		auth:          auth,
	}
}

// Credential returns the caller-supplied opaque secret decoded from the
// credential header. ok is false when the server declares no credential
// descriptor.
func (r *Request) Credential() (value string, ok bool) {
	return r.credential, r.hasCredential
}

// Auth returns the credential descriptor merged with environment-resolved
// secret material. ok is false when the server declares no credential
// descriptor.
func (r *Request) Auth() (info *AuthInfo, ok bool) {
	return r.auth, r.auth != nil
}
