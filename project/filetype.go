/**
Licensed to the Apache Software Foundation (ASF) under one
or more contributor license agreements.  See the NOTICE file
distributed with this work for additional information
regarding copyright ownership.  The ASF licenses this file
to you under the Apache License, Version 2.0 (the
'License'); you may not use this file except in compliance
with the License.  You may obtain a copy of the License at
http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing,
software distributed under the License is distributed on an
'AS IS' BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
KIND, either express or implied.  See the License for the
specific language governing permissions and limitations
under the License.
*/
package project

// Default values used when constructing a PBXFileReference from just a
// path, ported from the file-type tables below.
const (
	DefaultSourceTree = "<group>"
	DefaultFileType   = "unknown"
	DefaultEncoding   = 4
)

// FiletypeByExtension maps a bare file extension (no leading dot) to the
// lastKnownFileType string the IDE expects for it.
var FiletypeByExtension = map[string]string{
	"a":           "archive.ar",
	"app":         "wrapper.application",
	"appex":       "wrapper.app-extension",
	"bundle":      "wrapper.plug-in",
	"dylib":       "compiled.mach-o.dylib",
	"framework":   "wrapper.framework",
	"h":           "sourcecode.c.h",
	"m":           "sourcecode.c.objc",
	"markdown":    "text",
	"mdimporter":  "wrapper.cfbundle",
	"octest":      "wrapper.cfbundle",
	"pch":         "sourcecode.c.h",
	"plist":       "text.plist.xml",
	"sh":          "text.script.sh",
	"swift":       "sourcecode.swift",
	"tbd":         "sourcecode.text-based-dylib-definition",
	"xcassets":    "folder.assetcatalog",
	"xcconfig":    "text.xcconfig",
	"xcdatamodel": "wrapper.xcdatamodel",
	"xcodeproj":   "wrapper.pb-project",
	"xctest":      "wrapper.cfbundle",
	"xib":         "file.xib",
	"strings":     "text.plist.strings",
}

// ExtensionByFiletype is the reverse of FiletypeByExtension, built once at
// init time. Where several extensions share one file type ("h" and "pch"
// both map to "sourcecode.c.h"), which of them is kept is not defined.
var ExtensionByFiletype = reverseFiletypeMap()

func reverseFiletypeMap() map[string]string {
	out := make(map[string]string, len(FiletypeByExtension))
	for ext, ft := range FiletypeByExtension {
		out[ft] = ext
	}
	return out
}

// GroupByFiletype names the conventional Xcode group a file of this type is
// filed under when added with no explicit group.
var GroupByFiletype = map[string]string{
	"archive.ar":                             "Frameworks",
	"compiled.mach-o.dylib":                  "Frameworks",
	"sourcecode.text-based-dylib-definition": "Frameworks",
	"wrapper.framework":                      "Frameworks",
	"embedded.framework":                     "Embed Frameworks",
	"sourcecode.c.h":                         "Resources",
	"sourcecode.c.objc":                      "Sources",
	"sourcecode.swift":                       "Sources",
}

// PathByFiletype gives the default SDK-relative directory a file of this
// type is found under when no explicit path is given (system frameworks and
// libraries).
var PathByFiletype = map[string]string{
	"compiled.mach-o.dylib":                  "usr/lib/",
	"sourcecode.text-based-dylib-definition": "usr/lib/",
	"wrapper.framework":                      "System/Library/Frameworks/",
}

// SourceTreeByFiletype gives the default sourceTree anchor for a file of
// this type, overriding DefaultSourceTree.
var SourceTreeByFiletype = map[string]string{
	"compiled.mach-o.dylib":                  "SDKROOT",
	"sourcecode.text-based-dylib-definition": "SDKROOT",
	"wrapper.framework":                      "SDKROOT",
}

// EncodingByFiletype gives the fileEncoding value the IDE writes for text
// file types it can determine an encoding for.
var EncodingByFiletype = map[string]int{
	"sourcecode.c.h":     DefaultEncoding,
	"sourcecode.c.objc":  DefaultEncoding,
	"sourcecode.swift":   DefaultEncoding,
	"text":               DefaultEncoding,
	"text.plist.xml":     DefaultEncoding,
	"text.script.sh":     DefaultEncoding,
	"text.xcconfig":      DefaultEncoding,
	"text.plist.strings": DefaultEncoding,
}

// filetypeForExtension looks up ext (no leading dot) in FiletypeByExtension,
// falling back to DefaultFileType.
func filetypeForExtension(ext string) string {
	if ft, ok := FiletypeByExtension[ext]; ok {
		return ft
	}
	return DefaultFileType
}
