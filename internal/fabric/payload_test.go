package fabric

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func toJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestBuildAccessPoint(t *testing.T) {
	tests := []struct {
		name       string
		descriptor AccessPointDescriptor
		want       string
	}{
		{
			name:       "tagged port",
			descriptor: AccessPointDescriptor{Type: AccessPointPort, PortUUID: "p1", VLAN: intPtr(100)},
			want:       `{"type":"COLO","port":{"uuid":"p1"},"linkProtocol":{"type":"DOT1Q","vlanTag":100}}`,
		},
		{
			name:       "untagged port",
			descriptor: AccessPointDescriptor{Type: AccessPointPort, PortUUID: "p1"},
			want:       `{"type":"COLO","port":{"uuid":"p1"},"linkProtocol":{"type":"UNTAGGED"}}`,
		},
		{
			name:       "virtual device with vlan",
			descriptor: AccessPointDescriptor{Type: AccessPointVirtualDevice, VirtualDeviceUUID: "vd1", VLAN: intPtr(42)},
			want:       `{"type":"VD","virtualDevice":{"type":"EDGE","uuid":"vd1"},"interface":{"type":"NETWORK","id":42}}`,
		},
		{
			name:       "virtual device without vlan",
			descriptor: AccessPointDescriptor{Type: AccessPointVirtualDevice, VirtualDeviceUUID: "vd1"},
			want:       `{"type":"VD","virtualDevice":{"type":"EDGE","uuid":"vd1"},"interface":{"type":"CLOUD"}}`,
		},
		{
			name:       "service token",
			descriptor: AccessPointDescriptor{Type: AccessPointServiceToken, ServiceTokenUUID: "st1"},
			want:       `{"serviceToken":{"uuid":"st1"}}`,
		},
		{
			name:       "service profile with metro",
			descriptor: AccessPointDescriptor{Type: AccessPointServiceProfile, ServiceProfileUUID: "sp1", SellerMetroCode: "NY"},
			want:       `{"type":"SP","profile":{"type":"L2_PROFILE","uuid":"sp1"},"location":{"metroCode":"NY"}}`,
		},
		{
			name:       "service profile without metro",
			descriptor: AccessPointDescriptor{Type: AccessPointServiceProfile, ServiceProfileUUID: "sp1"},
			want:       `{"type":"SP","profile":{"type":"L2_PROFILE","uuid":"sp1"}}`,
		},
		{
			name: "fields of other kinds are ignored",
			descriptor: AccessPointDescriptor{
				Type:               AccessPointPort,
				PortUUID:           "p1",
				ServiceProfileUUID: "sp1",
				SellerMetroCode:    "NY",
				VirtualDeviceUUID:  "vd1",
			},
			want: `{"type":"COLO","port":{"uuid":"p1"},"linkProtocol":{"type":"UNTAGGED"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ap, err := BuildAccessPoint(tt.descriptor)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, toJSON(t, ap))
		})
	}
}

func TestBuildAccessPoint_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		descriptor AccessPointDescriptor
		field      string
	}{
		{"missing type", AccessPointDescriptor{PortUUID: "p1"}, "access_point.type"},
		{"unknown type", AccessPointDescriptor{Type: "cloud_router", PortUUID: "p1"}, "access_point.type"},
		{"port without uuid", AccessPointDescriptor{Type: AccessPointPort}, "access_point.port_uuid"},
		{"device without uuid", AccessPointDescriptor{Type: AccessPointVirtualDevice}, "access_point.virtual_device_uuid"},
		{"token without uuid", AccessPointDescriptor{Type: AccessPointServiceToken}, "access_point.service_token_uuid"},
		{"profile without uuid", AccessPointDescriptor{Type: AccessPointServiceProfile}, "access_point.service_profile_uuid"},
		{"vlan out of range", AccessPointDescriptor{Type: AccessPointPort, PortUUID: "p1", VLAN: intPtr(5000)}, "access_point.vlan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ap, err := BuildAccessPoint(tt.descriptor)
			assert.Nil(t, ap, "no partial access point may be produced")

			var argErr *ArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, tt.field, argErr.Field)
		})
	}
}

func TestBuildSide(t *testing.T) {
	side, err := BuildSide(AccessPointDescriptor{Type: AccessPointServiceToken, ServiceTokenUUID: "st1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"serviceToken":{"uuid":"st1"}}`, toJSON(t, side))

	side, err = BuildSide(AccessPointDescriptor{Type: AccessPointPort, PortUUID: "p1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"accessPoint":{"type":"COLO","port":{"uuid":"p1"},"linkProtocol":{"type":"UNTAGGED"}}}`, toJSON(t, side))
}

func TestBuildConnectionPayload_PortToServiceProfile(t *testing.T) {
	payload, err := BuildConnectionPayload(ConnectionRequest{
		Name:      "X",
		Type:      "EVPL_VC",
		Bandwidth: 50,
		ASide:     &AccessPointDescriptor{Type: AccessPointPort, PortUUID: "p1", VLAN: intPtr(100)},
		ZSide:     &AccessPointDescriptor{Type: AccessPointServiceProfile, ServiceProfileUUID: "sp1", SellerMetroCode: "NY"},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "EVPL_VC",
		"name": "X",
		"bandwidth": 50,
		"aSide": {"accessPoint": {"type": "COLO", "port": {"uuid": "p1"}, "linkProtocol": {"type": "DOT1Q", "vlanTag": 100}}},
		"zSide": {"accessPoint": {"type": "SP", "profile": {"type": "L2_PROFILE", "uuid": "sp1"}, "location": {"metroCode": "NY"}}}
	}`, toJSON(t, payload))
}

func TestBuildConnectionPayload_OptionalFields(t *testing.T) {
	base := ConnectionRequest{
		Name:      "c",
		Type:      "EVPL_VC",
		Bandwidth: 10,
		ASide:     &AccessPointDescriptor{Type: AccessPointPort, PortUUID: "p1"},
		ZSide:     &AccessPointDescriptor{Type: AccessPointPort, PortUUID: "p2"},
	}

	t.Run("omitted when absent", func(t *testing.T) {
		payload, err := BuildConnectionPayload(base)
		require.NoError(t, err)
		for _, key := range []string{"description", "notifications", "redundancy", "project"} {
			assert.NotContains(t, payload, key)
		}
	})

	t.Run("emitted when present", func(t *testing.T) {
		req := base
		req.Description = "backup link"
		req.Notifications = []string{"noc@example.com"}
		req.Redundancy = "SECONDARY"
		req.ProjectID = "proj-1"

		payload, err := BuildConnectionPayload(req)
		require.NoError(t, err)

		assert.Equal(t, "backup link", payload["description"])
		assert.JSONEq(t, `[{"type":"ALL","emails":["noc@example.com"]}]`, toJSON(t, payload["notifications"]))
		assert.JSONEq(t, `{"priority":"SECONDARY"}`, toJSON(t, payload["redundancy"]))
		assert.JSONEq(t, `{"projectId":"proj-1"}`, toJSON(t, payload["project"]))
	})
}

func TestBuildConnectionPayload_Validation(t *testing.T) {
	valid := ConnectionRequest{
		Name:      "c",
		Type:      "EVPL_VC",
		Bandwidth: 10,
		ASide:     &AccessPointDescriptor{Type: AccessPointPort, PortUUID: "p1"},
		ZSide:     &AccessPointDescriptor{Type: AccessPointPort, PortUUID: "p2"},
	}

	tests := []struct {
		name   string
		mutate func(r *ConnectionRequest)
		field  string
	}{
		{"missing type", func(r *ConnectionRequest) { r.Type = "" }, "type"},
		{"missing name", func(r *ConnectionRequest) { r.Name = "" }, "name"},
		{"zero bandwidth", func(r *ConnectionRequest) { r.Bandwidth = 0 }, "bandwidth"},
		{"missing a_side", func(r *ConnectionRequest) { r.ASide = nil }, "a_side"},
		{"bad z_side", func(r *ConnectionRequest) { r.ZSide = &AccessPointDescriptor{Type: "bogus"} }, "z_side.type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := BuildConnectionPayload(req)

			var argErr *ArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, tt.field, argErr.Field)
		})
	}
}

func TestBuildUpdatePatch(t *testing.T) {
	t.Run("name and bandwidth in fixed order", func(t *testing.T) {
		ops, err := BuildUpdatePatch(UpdateConnectionRequest{Bandwidth: intPtr(100), Name: strPtr("a")})
		require.NoError(t, err)
		assert.Equal(t, []PatchOperation{
			{Op: "replace", Path: "/name", Value: "a"},
			{Op: "replace", Path: "/bandwidth", Value: 100},
		}, ops)
	})

	t.Run("all fields", func(t *testing.T) {
		ops, err := BuildUpdatePatch(UpdateConnectionRequest{
			Notifications: []string{"a@example.com"},
			Bandwidth:     intPtr(200),
			Description:   strPtr("d"),
			Name:          strPtr("n"),
		})
		require.NoError(t, err)
		assert.JSONEq(t, `[
			{"op":"replace","path":"/name","value":"n"},
			{"op":"replace","path":"/description","value":"d"},
			{"op":"replace","path":"/bandwidth","value":200},
			{"op":"replace","path":"/notifications","value":[{"type":"ALL","emails":["a@example.com"]}]}
		]`, toJSON(t, ops))
	})

	t.Run("decoded input order does not matter", func(t *testing.T) {
		var req UpdateConnectionRequest
		require.NoError(t, json.Unmarshal([]byte(`{"bandwidth":100,"name":"a"}`), &req))
		ops, err := BuildUpdatePatch(req)
		require.NoError(t, err)
		require.Len(t, ops, 2)
		assert.Equal(t, "/name", ops[0].Path)
		assert.Equal(t, "/bandwidth", ops[1].Path)
	})

	t.Run("empty description is an explicit update", func(t *testing.T) {
		ops, err := BuildUpdatePatch(UpdateConnectionRequest{Description: strPtr("")})
		require.NoError(t, err)
		assert.Equal(t, []PatchOperation{{Op: "replace", Path: "/description", Value: ""}}, ops)
	})

	t.Run("nothing to update", func(t *testing.T) {
		_, err := BuildUpdatePatch(UpdateConnectionRequest{})
		assert.True(t, IsArgumentError(err))
	})

	t.Run("invalid bandwidth", func(t *testing.T) {
		_, err := BuildUpdatePatch(UpdateConnectionRequest{Bandwidth: intPtr(-1)})
		assert.True(t, IsArgumentError(err))
	})
}

func TestBuildServiceTokenPayload(t *testing.T) {
	t.Run("required fields only", func(t *testing.T) {
		payload, err := BuildServiceTokenPayload(ServiceTokenRequest{
			Type:           "VC_TOKEN",
			Name:           "partner",
			ExpirationDate: "2026-12-31T00:00:00Z",
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"VC_TOKEN","name":"partner","expirationDateTime":"2026-12-31T00:00:00Z"}`, toJSON(t, payload))
	})

	t.Run("nested connection uses the access point builder", func(t *testing.T) {
		payload, err := BuildServiceTokenPayload(ServiceTokenRequest{
			Type:           "VC_TOKEN",
			Name:           "partner",
			ExpirationDate: "2026-12-31T00:00:00Z",
			Description:    "for acme",
			Notifications:  []string{"ops@example.com"},
			ServiceTokenConnection: &ServiceTokenConnection{
				BandwidthLimit: intPtr(1000),
				ASide:          &AccessPointDescriptor{Type: AccessPointPort, PortUUID: "p1", VLAN: intPtr(300)},
			},
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"type": "VC_TOKEN",
			"name": "partner",
			"expirationDateTime": "2026-12-31T00:00:00Z",
			"description": "for acme",
			"notifications": [{"type": "ALL", "emails": ["ops@example.com"]}],
			"serviceTokenConnection": {
				"type": "EVPL_VC",
				"bandwidthLimit": 1000,
				"aSide": {"accessPointSelectors": [
					{"type": "COLO", "port": {"uuid": "p1"}, "linkProtocol": {"type": "DOT1Q", "vlanTag": 300}}
				]}
			}
		}`, toJSON(t, payload))
	})

	t.Run("connection without a_side", func(t *testing.T) {
		payload, err := BuildServiceTokenPayload(ServiceTokenRequest{
			Type:                   "VC_TOKEN",
			Name:                   "partner",
			ExpirationDate:         "2026-12-31T00:00:00Z",
			ServiceTokenConnection: &ServiceTokenConnection{Type: "EVPLAN_VC"},
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"EVPLAN_VC"}`, toJSON(t, payload["serviceTokenConnection"]))
	})

	t.Run("missing expiration", func(t *testing.T) {
		_, err := BuildServiceTokenPayload(ServiceTokenRequest{Type: "VC_TOKEN", Name: "partner"})
		var argErr *ArgumentError
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, "expiration_date", argErr.Field)
	})

	t.Run("invalid nested access point", func(t *testing.T) {
		_, err := BuildServiceTokenPayload(ServiceTokenRequest{
			Type:                   "VC_TOKEN",
			Name:                   "partner",
			ExpirationDate:         "2026-12-31T00:00:00Z",
			ServiceTokenConnection: &ServiceTokenConnection{ASide: &AccessPointDescriptor{Type: AccessPointPort}},
		})
		var argErr *ArgumentError
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, "service_token_connection.a_side.port_uuid", argErr.Field)
	})
}
