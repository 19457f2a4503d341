// Copyright 2025 Marc-Antoine Ruel and Félix Lachapelle. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package appinspect lists the files of the create-anything scaffold that are
// worth a look when exploring it.
package appinspect

import "path"

// ProjectDir is the scaffold root, relative to the working directory.
const ProjectDir = "create-anything"

// Separator is printed between two sections.
var Separator = "\n" + "==================================================" + "\n\n"

// Section is one titled unit of output.
type Section struct {
	Title string
	Path  string
	// Limit is the maximum number of characters displayed. 0 means the default.
	Limit int
}

// Sources are the text files dumped by examine-app.
var Sources = []Section{
	{Title: "WEB APP ROOT COMPONENT", Path: path.Join(ProjectDir, "apps/web/src/app/root.tsx"), Limit: 1000},
	{Title: "MOBILE APP ROOT COMPONENT", Path: path.Join(ProjectDir, "apps/mobile/App.tsx"), Limit: 1000},
	{Title: "WEB AUTH UTILITY", Path: path.Join(ProjectDir, "apps/web/src/utils/useAuth.js"), Limit: 500},
	{Title: "MOBILE AUTH UTILITY", Path: path.Join(ProjectDir, "apps/mobile/src/utils/auth/useAuth.js"), Limit: 500},
}

// Manifests are the package descriptors printed by read-package-json.
var Manifests = []Section{
	{Title: "WEB APP PACKAGE.JSON", Path: path.Join(ProjectDir, "apps/web/package.json")},
	{Title: "MOBILE APP PACKAGE.JSON", Path: path.Join(ProjectDir, "apps/mobile/package.json")},
}

// Header returns the header line printed before a section's content.
func (s *Section) Header() string {
	return "=== " + s.Title + " ==="
}
