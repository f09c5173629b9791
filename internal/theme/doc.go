// Package theme defines the dark and light themes, their palettes and the
// marker classes stylesheets key off. It also renders the bundled stylesheet
// that maps each marker class to CSS custom properties.
package theme
