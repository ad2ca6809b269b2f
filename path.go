package formschema

import "strconv"

// Issue paths start at the schema label and name each step down the tree:
// ":name" for an object property and "[i]" for an array item, as in
// "submission:audience[0]".

func propertyPath(base, name string) string { return base + ":" + name }

func itemPath(base string, i int) string { return base + "[" + strconv.Itoa(i) + "]" }
