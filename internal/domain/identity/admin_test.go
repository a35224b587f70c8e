package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAdmin(t *testing.T) *Admin {
	admin, err := NewAdmin("Asha", "asha@example.com", "$2a$10$hash")
	require.NoError(t, err)
	return admin
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		want Role
		ok   bool
	}{
		{"admin", RoleAdmin, true},
		{"Admin", RoleAdmin, true},
		{"superadmin", RoleSuperAdmin, true},
		{"superAdmin", RoleSuperAdmin, true},
		{"SuperAdmin", RoleSuperAdmin, true},
		{"super-admin", RoleSuperAdmin, true},
		{" superadmin ", RoleSuperAdmin, true},
		{"root", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseRole(tt.raw)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewAdmin(t *testing.T) {
	t.Run("signup starts with no capabilities", func(t *testing.T) {
		admin := createTestAdmin(t)
		assert.Equal(t, RoleAdmin, admin.Role)
		assert.Empty(t, admin.Capabilities)
		assert.False(t, admin.IsSuperAdmin())
	})

	t.Run("normalizes email to lowercase", func(t *testing.T) {
		admin, err := NewAdmin("Asha", "Asha@Example.COM", "h")
		require.NoError(t, err)
		assert.Equal(t, "asha@example.com", admin.Email)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := NewAdmin("", "a@b.c", "h")
		assert.Error(t, err)
		_, err = NewAdmin("A", "", "h")
		assert.Error(t, err)
		_, err = NewAdmin("A", "a@b.c", "")
		assert.Error(t, err)
	})
}

func TestAdmin_HasCapability(t *testing.T) {
	t.Run("plain admin needs explicit grant", func(t *testing.T) {
		admin := createTestAdmin(t)
		assert.False(t, admin.HasCapability(CapabilityOrders))

		require.NoError(t, admin.SetCapabilities(CapabilitySet{CapabilityOrders}))
		assert.True(t, admin.HasCapability(CapabilityOrders))
		assert.False(t, admin.HasCapability(CapabilityProducts))
	})

	t.Run("super admin passes every check", func(t *testing.T) {
		admin := createTestAdmin(t)
		admin.Role = RoleSuperAdmin
		admin.Capabilities = CapabilitySet{}
		for _, c := range AllCapabilities() {
			assert.True(t, admin.HasCapability(c))
		}
	})
}

func TestAdmin_IsSuperAdmin(t *testing.T) {
	t.Run("via role", func(t *testing.T) {
		admin := createTestAdmin(t)
		admin.Role = RoleSuperAdmin
		assert.True(t, admin.IsSuperAdmin())
	})

	t.Run("via manageAdmins capability", func(t *testing.T) {
		admin := createTestAdmin(t)
		require.NoError(t, admin.SetCapabilities(CapabilitySet{CapabilityManageAdmins}))
		assert.True(t, admin.IsSuperAdmin())
	})
}

func TestAdmin_PromoteDemote(t *testing.T) {
	admin := createTestAdmin(t)

	admin.Promote()
	assert.Equal(t, RoleSuperAdmin, admin.Role)
	assert.Len(t, admin.Capabilities, len(AllCapabilities()))

	admin.Demote()
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.Empty(t, admin.Capabilities)
	assert.False(t, admin.IsSuperAdmin())
}

func TestAdmin_Grant(t *testing.T) {
	grantor := uuid.New()

	t.Run("records role, capabilities and grantor", func(t *testing.T) {
		admin := createTestAdmin(t)
		err := admin.Grant(RoleSuperAdmin, CapabilitySet{CapabilityOrders}, grantor)
		require.NoError(t, err)
		assert.Equal(t, RoleSuperAdmin, admin.Role)
		assert.Equal(t, CapabilitySet{CapabilityOrders}, admin.Capabilities)
		require.NotNil(t, admin.GrantedBy)
		assert.Equal(t, grantor, *admin.GrantedBy)
	})

	t.Run("empty role defaults to admin", func(t *testing.T) {
		admin := createTestAdmin(t)
		require.NoError(t, admin.Grant("", nil, grantor))
		assert.Equal(t, RoleAdmin, admin.Role)
	})

	t.Run("unknown capability is rejected", func(t *testing.T) {
		admin := createTestAdmin(t)
		err := admin.Grant(RoleAdmin, CapabilitySet{"deployments"}, grantor)
		require.Error(t, err)
	})
}

func TestAdmin_SetCapabilities(t *testing.T) {
	admin := createTestAdmin(t)
	err := admin.SetCapabilities(CapabilitySet{"deployments"})
	assert.Error(t, err)
	assert.Empty(t, admin.Capabilities)
}

func TestAdmin_RecordLogin(t *testing.T) {
	admin := createTestAdmin(t)
	require.Nil(t, admin.LastLoginAt)

	now := time.Now()
	admin.RecordLogin(now)
	require.NotNil(t, admin.LastLoginAt)
	assert.Equal(t, now, *admin.LastLoginAt)
}

func TestCapabilitySet_ScanValue(t *testing.T) {
	set := CapabilitySet{CapabilityUsers, CapabilityOrders}

	v, err := set.Value()
	require.NoError(t, err)

	var got CapabilitySet
	require.NoError(t, got.Scan(v))
	assert.Equal(t, set, got)

	var empty CapabilitySet
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}
