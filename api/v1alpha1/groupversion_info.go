// Package v1alpha1 contains the report resources of the balrain v1alpha1 API.
package v1alpha1

import (
	"k8s.io/apimachinery/pkg/runtime/schema"
)

var (
	// GroupVersion is the group version of the report resources.
	GroupVersion = schema.GroupVersion{Group: "balrain.dev", Version: "v1alpha1"}
)
