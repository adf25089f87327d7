package fabric

import "fmt"

// AccessPointKind discriminates the AccessPointDescriptor variants.
type AccessPointKind string

const (
	AccessPointPort           AccessPointKind = "port"
	AccessPointVirtualDevice  AccessPointKind = "virtual_device"
	AccessPointServiceToken   AccessPointKind = "service_token"
	AccessPointServiceProfile AccessPointKind = "service_profile"
)

// AccessPointDescriptor is the caller-facing description of one side of a
// connection. Only the fields of the selected Type are meaningful.
type AccessPointDescriptor struct {
	Type AccessPointKind `json:"type"`

	PortUUID           string `json:"port_uuid,omitempty"`
	VirtualDeviceUUID  string `json:"virtual_device_uuid,omitempty"`
	ServiceTokenUUID   string `json:"service_token_uuid,omitempty"`
	ServiceProfileUUID string `json:"service_profile_uuid,omitempty"`
	SellerMetroCode    string `json:"seller_metro_code,omitempty"`

	// VLAN selects tagged (DOT1Q) link configuration for port and virtual
	// device endpoints when set.
	VLAN *int `json:"vlan,omitempty"`
}

// Validate checks that the variant's required identifier is present. field
// prefixes the reported argument name, e.g. "a_side".
func (d *AccessPointDescriptor) Validate(field string) error {
	if d == nil {
		return missing(field)
	}

	switch d.Type {
	case AccessPointPort:
		if d.PortUUID == "" {
			return missing(field + ".port_uuid")
		}
	case AccessPointVirtualDevice:
		if d.VirtualDeviceUUID == "" {
			return missing(field + ".virtual_device_uuid")
		}
	case AccessPointServiceToken:
		if d.ServiceTokenUUID == "" {
			return missing(field + ".service_token_uuid")
		}
	case AccessPointServiceProfile:
		if d.ServiceProfileUUID == "" {
			return missing(field + ".service_profile_uuid")
		}
	case "":
		return missing(field + ".type")
	default:
		reason := fmt.Sprintf("unknown access point type %q (expected %s, %s, %s or %s)",
			d.Type, AccessPointPort, AccessPointVirtualDevice, AccessPointServiceToken, AccessPointServiceProfile)
		return &ArgumentError{Field: field + ".type", Reason: reason}
	}

	if d.VLAN != nil && (*d.VLAN < 1 || *d.VLAN > 4094) {
		return &ArgumentError{Field: field + ".vlan", Reason: fmt.Sprintf("must be between 1 and 4094, got %d", *d.VLAN)}
	}

	return nil
}

// ConnectionRequest describes a connection to create or validate.
type ConnectionRequest struct {
	Type          string                 `json:"type"`
	Name          string                 `json:"name"`
	Bandwidth     int                    `json:"bandwidth"`
	Description   string                 `json:"description,omitempty"`
	Notifications []string               `json:"notifications,omitempty"`
	Redundancy    string                 `json:"redundancy,omitempty"`
	ProjectID     string                 `json:"project_id,omitempty"`
	ASide         *AccessPointDescriptor `json:"a_side"`
	ZSide         *AccessPointDescriptor `json:"z_side"`
}

// Validate checks required fields and both access point descriptors.
func (r ConnectionRequest) Validate() error {
	if r.Type == "" {
		return missing("type")
	}
	if r.Name == "" {
		return missing("name")
	}
	if r.Bandwidth <= 0 {
		return &ArgumentError{Field: "bandwidth", Reason: "must be a positive number of Mbps"}
	}
	if err := r.ASide.Validate("a_side"); err != nil {
		return err
	}
	return r.ZSide.Validate("z_side")
}

// UpdateConnectionRequest is a partial update; nil fields are left unchanged.
type UpdateConnectionRequest struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Bandwidth     *int     `json:"bandwidth,omitempty"`
	Notifications []string `json:"notifications,omitempty"`
}

// ServiceTokenConnection is the optional connection template of a service token.
type ServiceTokenConnection struct {
	Type           string                 `json:"type,omitempty"`
	BandwidthLimit *int                   `json:"bandwidth_limit,omitempty"`
	ASide          *AccessPointDescriptor `json:"a_side,omitempty"`
}

// ServiceTokenRequest describes a service token to create.
type ServiceTokenRequest struct {
	Type           string   `json:"type"`
	Name           string   `json:"name"`
	ExpirationDate string   `json:"expiration_date"`
	Description    string   `json:"description,omitempty"`
	Notifications  []string `json:"notifications,omitempty"`

	ServiceTokenConnection *ServiceTokenConnection `json:"service_token_connection,omitempty"`
}

// Validate checks required fields and the nested access point, if any.
func (r ServiceTokenRequest) Validate() error {
	if r.Type == "" {
		return missing("type")
	}
	if r.Name == "" {
		return missing("name")
	}
	if r.ExpirationDate == "" {
		return missing("expiration_date")
	}
	if conn := r.ServiceTokenConnection; conn != nil {
		if conn.BandwidthLimit != nil && *conn.BandwidthLimit <= 0 {
			return &ArgumentError{Field: "service_token_connection.bandwidth_limit", Reason: "must be positive"}
		}
		if conn.ASide != nil {
			return conn.ASide.Validate("service_token_connection.a_side")
		}
	}
	return nil
}

// Page is an offset/limit pagination pair. A zero Limit means DefaultLimit.
type Page struct {
	Offset int
	Limit  int
}

const DefaultLimit = 20

// normalize applies defaults and rejects negative values.
func (p Page) normalize() (Page, error) {
	if p.Offset < 0 {
		return Page{}, &ArgumentError{Field: "offset", Reason: "must not be negative"}
	}
	if p.Limit < 0 {
		return Page{}, &ArgumentError{Field: "limit", Reason: "must not be negative"}
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	return p, nil
}

// ConnectionFilter narrows a connection search. Empty fields are ignored.
type ConnectionFilter struct {
	Name      string
	State     string
	ProjectID string
}

// RouterFilter narrows a cloud router search. Empty fields are ignored.
type RouterFilter struct {
	Name      string
	State     string
	ProjectID string
}

// ServiceProfileFilter narrows the service profile listing.
type ServiceProfileFilter struct {
	MetroCode string
	Type      string
	Name      string
}
