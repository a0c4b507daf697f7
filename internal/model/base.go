package model

// JSONMap represents a generic JSON object.
type JSONMap map[string]interface{}
