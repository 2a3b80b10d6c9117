package entities

// ElementState represents the state a selector is waited for
type ElementState string

const (
	ElementAttached ElementState = "attached"
	ElementDetached ElementState = "detached"
	ElementVisible  ElementState = "visible"
	ElementHidden   ElementState = "hidden"
)
