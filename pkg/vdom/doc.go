// Package vdom provides an in-memory node tree for reactor views.
//
// A Document creates nodes and records every structural change as a Patch.
// Nodes implement view.Node and a Document implements view.Platform, so the
// tree can back views in tests, in the fuzzer and in the live demo, where
// the patch log is streamed to connected clients.
//
// # Core Types
//
// Node is an element, text, comment or fragment node linked to its parent
// and siblings. Document owns the node ids and the patch log.
//
//	doc := vdom.NewDocument()
//	list := doc.Element("ul")
//	list.AppendChild(doc.Element("li", doc.Text("one")))
//	doc.Root().AppendChild(list)
//	fmt.Println(doc.Root()) // <body><ul><li>one</li></ul></body>
//
// # Patches
//
// TakePatches returns the operations applied since the previous call, in
// order. Insert patches carry what a client needs to create the node.
package vdom
