package entity

// Chart is a loosely-typed chart description produced by the model
// (type, title, labels, datasets...). The frontend chart renderer is the
// only consumer, so no rigid schema is enforced here.
type Chart = map[string]any
