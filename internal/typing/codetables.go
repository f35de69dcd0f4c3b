package typing

var codeKeywords = map[string][]string{
	"python": {
		"def", "class", "import", "from", "return", "if", "else", "elif", "while", "for",
		"in", "try", "except", "finally", "with", "as", "raise", "pass", "break", "continue",
		"yield", "async", "await", "lambda", "None", "True", "False", "self", "cls",
	},
	"php": {
		"<?php", "?>", "$", "->", "::", "function", "class", "public", "private", "protected",
		"static", "const", "return", "if", "else", "elseif", "while", "for", "foreach", "as",
		"try", "catch", "finally", "throw", "new", "null", "true", "false", "$this", "self",
	},
	"javascript": {
		"function", "class", "const", "let", "var", "return", "if", "else", "while", "for",
		"in", "of", "try", "catch", "finally", "throw", "new", "null", "undefined", "true",
		"false", "this", "super", "async", "await", "export", "import", "default",
	},
	"java": {
		"public", "private", "protected", "class", "interface", "extends", "implements", "static",
		"final", "abstract", "void", "int", "long", "float", "double", "boolean", "char", "String",
		"return", "if", "else", "while", "for", "try", "catch", "finally", "throw", "new", "null",
		"true", "false", "this", "super",
	},
	"cpp": {
		"class", "struct", "public", "private", "protected", "virtual", "override", "const",
		"static", "inline", "void", "int", "long", "float", "double", "bool", "char", "string",
		"return", "if", "else", "while", "for", "try", "catch", "throw", "new", "delete",
		"nullptr", "true", "false", "this",
	},
}

var autoCompletePatterns = map[string]map[string]string{
	"python": {
		"if":    "if :",
		"for":   "for in :",
		"while": "while :",
		"def":   "def ():",
		"class": "class :",
		"try":   "try:\n    \nexcept :",
		"with":  "with as :",
	},
	"php": {
		"if":       "if () {",
		"for":      "for (;;) {",
		"while":    "while () {",
		"function": "function () {",
		"class":    "class  {",
		"try":      "try {\n    \n} catch () {",
		"foreach":  "foreach ( as ) {",
	},
	"javascript": {
		"if":       "if () {",
		"for":      "for (;;) {",
		"while":    "while () {",
		"function": "function () {",
		"class":    "class  {",
		"try":      "try {\n    \n} catch () {",
		"forof":    "for (const  of ) {",
	},
}
