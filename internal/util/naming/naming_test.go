package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "kube", Tenant("kube"))
	assert.Equal(t, "kube-pdom", PhysicalDomain("kube"))
	assert.Equal(t, "kube-pool", VLANPool("kube"))
	assert.Equal(t, "kube-mpool", MulticastPool("kube"))
	assert.Equal(t, "kube", VMMDomain("kube"))
	assert.Equal(t, "kube", VMMController("kube"))
	assert.Equal(t, "kube", FabricLogin("kube"))
}
