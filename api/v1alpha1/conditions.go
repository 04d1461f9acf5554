package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func (a *AndroidModule) GetConditions() []metav1.Condition {
	return a.Status.Conditions
}

func (a *AndroidModule) SetConditions(conditions []metav1.Condition) {
	a.Status.Conditions = conditions
}

// SetCondition adds condition or replaces the condition of the same type,
// bumping LastTransitionTime only if it changed. It reports whether it did.
func (a *AndroidModule) SetCondition(condition metav1.Condition) bool {
	conditions := a.GetConditions()
	if conditions == nil {
		conditions = []metav1.Condition{}
	}

	condition.ObservedGeneration = a.GetGeneration()

	for i, c := range conditions {
		if c.Type == condition.Type {
			if c.Message != condition.Message || c.Reason != condition.Reason || c.Status != condition.Status {
				condition.LastTransitionTime = metav1.Now()
				conditions[i] = condition
				a.SetConditions(conditions)
				return true
			}
			return false
		}
	}

	condition.LastTransitionTime = metav1.Now()
	a.SetConditions(append(conditions, condition))
	return true
}

// Condition returns the condition of type t.
func (a *AndroidModule) Condition(t string) (metav1.Condition, bool) {
	for _, c := range a.Status.Conditions {
		if c.Type == t {
			return c, true
		}
	}

	return metav1.Condition{}, false
}

// IsConditionTrue reports whether the condition of type t is present and true.
func (a *AndroidModule) IsConditionTrue(t string) bool {
	c, ok := a.Condition(t)
	return ok && c.Status == metav1.ConditionTrue
}
