package fabric

// Wire values of the Fabric v4 schema.
const (
	accessPointTypeColo           = "COLO"
	accessPointTypeVirtualDevice  = "VD"
	accessPointTypeServiceProfile = "SP"

	linkProtocolDot1Q    = "DOT1Q"
	linkProtocolUntagged = "UNTAGGED"

	virtualDeviceTypeEdge = "EDGE"
	interfaceTypeNetwork  = "NETWORK"
	interfaceTypeCloud    = "CLOUD"

	profileTypeL2 = "L2_PROFILE"

	notificationTypeAll = "ALL"

	defaultServiceTokenConnectionType = "EVPL_VC"

	patchOpReplace = "replace"
)

// PatchOperation is one JSON Patch entry sent with PATCH /connections/{id}.
type PatchOperation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// BuildAccessPoint maps a descriptor to the provider's access point object.
// Each variant emits only its own fields; an unknown or incomplete
// descriptor is rejected with an *ArgumentError.
func BuildAccessPoint(d AccessPointDescriptor) (map[string]any, error) {
	return buildAccessPoint(&d, "access_point")
}

func buildAccessPoint(d *AccessPointDescriptor, field string) (map[string]any, error) {
	if err := d.Validate(field); err != nil {
		return nil, err
	}

	switch d.Type {
	case AccessPointPort:
		ap := map[string]any{
			"type": accessPointTypeColo,
			"port": map[string]any{"uuid": d.PortUUID},
		}
		if d.VLAN != nil {
			ap["linkProtocol"] = map[string]any{"type": linkProtocolDot1Q, "vlanTag": *d.VLAN}
		} else {
			ap["linkProtocol"] = map[string]any{"type": linkProtocolUntagged}
		}
		return ap, nil

	case AccessPointVirtualDevice:
		ap := map[string]any{
			"type":          accessPointTypeVirtualDevice,
			"virtualDevice": map[string]any{"type": virtualDeviceTypeEdge, "uuid": d.VirtualDeviceUUID},
		}
		if d.VLAN != nil {
			ap["interface"] = map[string]any{"type": interfaceTypeNetwork, "id": *d.VLAN}
		} else {
			ap["interface"] = map[string]any{"type": interfaceTypeCloud}
		}
		return ap, nil

	case AccessPointServiceToken:
		return map[string]any{
			"serviceToken": map[string]any{"uuid": d.ServiceTokenUUID},
		}, nil

	default: // AccessPointServiceProfile; Validate rejected everything else.
		ap := map[string]any{
			"type":    accessPointTypeServiceProfile,
			"profile": map[string]any{"type": profileTypeL2, "uuid": d.ServiceProfileUUID},
		}
		if d.SellerMetroCode != "" {
			ap["location"] = map[string]any{"metroCode": d.SellerMetroCode}
		}
		return ap, nil
	}
}

// BuildSide wraps an access point into a connection side. Service tokens sit
// directly on the side; all other kinds go under "accessPoint".
func BuildSide(d AccessPointDescriptor) (map[string]any, error) {
	return buildSide(&d, "side")
}

func buildSide(d *AccessPointDescriptor, field string) (map[string]any, error) {
	ap, err := buildAccessPoint(d, field)
	if err != nil {
		return nil, err
	}
	if d.Type == AccessPointServiceToken {
		return ap, nil
	}
	return map[string]any{"accessPoint": ap}, nil
}

// BuildConnectionPayload assembles the body for POST /connections and
// POST /connections/validate. Optional fields are emitted only when set.
func BuildConnectionPayload(r ConnectionRequest) (map[string]any, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	aSide, err := buildSide(r.ASide, "a_side")
	if err != nil {
		return nil, err
	}
	zSide, err := buildSide(r.ZSide, "z_side")
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"type":      r.Type,
		"name":      r.Name,
		"bandwidth": r.Bandwidth,
		"aSide":     aSide,
		"zSide":     zSide,
	}
	if r.Description != "" {
		payload["description"] = r.Description
	}
	if len(r.Notifications) > 0 {
		payload["notifications"] = buildNotifications(r.Notifications)
	}
	if r.Redundancy != "" {
		payload["redundancy"] = map[string]any{"priority": r.Redundancy}
	}
	if r.ProjectID != "" {
		payload["project"] = map[string]any{"projectId": r.ProjectID}
	}

	return payload, nil
}

// BuildUpdatePatch converts a partial update into replace operations in the
// fixed order name, description, bandwidth, notifications.
func BuildUpdatePatch(r UpdateConnectionRequest) ([]PatchOperation, error) {
	var ops []PatchOperation

	if r.Name != nil {
		if *r.Name == "" {
			return nil, &ArgumentError{Field: "name", Reason: "must not be empty"}
		}
		ops = append(ops, PatchOperation{Op: patchOpReplace, Path: "/name", Value: *r.Name})
	}
	if r.Description != nil {
		ops = append(ops, PatchOperation{Op: patchOpReplace, Path: "/description", Value: *r.Description})
	}
	if r.Bandwidth != nil {
		if *r.Bandwidth <= 0 {
			return nil, &ArgumentError{Field: "bandwidth", Reason: "must be a positive number of Mbps"}
		}
		ops = append(ops, PatchOperation{Op: patchOpReplace, Path: "/bandwidth", Value: *r.Bandwidth})
	}
	if r.Notifications != nil {
		ops = append(ops, PatchOperation{Op: patchOpReplace, Path: "/notifications", Value: buildNotifications(r.Notifications)})
	}

	if len(ops) == 0 {
		return nil, &ArgumentError{Field: "name|description|bandwidth|notifications", Reason: "at least one field to update is required"}
	}
	return ops, nil
}

// BuildServiceTokenPayload assembles the body for POST /serviceTokens.
func BuildServiceTokenPayload(r ServiceTokenRequest) (map[string]any, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"type":               r.Type,
		"name":               r.Name,
		"expirationDateTime": r.ExpirationDate,
	}
	if r.Description != "" {
		payload["description"] = r.Description
	}
	if len(r.Notifications) > 0 {
		payload["notifications"] = buildNotifications(r.Notifications)
	}

	if conn := r.ServiceTokenConnection; conn != nil {
		connType := conn.Type
		if connType == "" {
			connType = defaultServiceTokenConnectionType
		}
		block := map[string]any{"type": connType}
		if conn.BandwidthLimit != nil {
			block["bandwidthLimit"] = *conn.BandwidthLimit
		}
		if conn.ASide != nil {
			selector, err := buildAccessPoint(conn.ASide, "service_token_connection.a_side")
			if err != nil {
				return nil, err
			}
			block["aSide"] = map[string]any{"accessPointSelectors": []any{selector}}
		}
		payload["serviceTokenConnection"] = block
	}

	return payload, nil
}

func buildNotifications(emails []string) []any {
	return []any{
		map[string]any{"type": notificationTypeAll, "emails": emails},
	}
}
