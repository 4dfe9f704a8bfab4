package pathing

import "github.com/cainus/mongojsonschema/tree"

// Resolve lists the access paths at which nodes of the given extended kind
// occur under root. Properties are visited in declared order and every array
// level contributes one wildcard segment. Arrays without items and objects
// without properties contribute nothing. Each node is visited once.
func Resolve(root tree.Node, kind tree.ExtendedKind) []tree.Path {
	return resolve(root, kind.Kind(), tree.Path{})
}

func resolve(n tree.Node, want tree.Kind, prefix tree.Path) []tree.Path {
	switch t := n.(type) {
	case *tree.Object:
		var paths []tree.Path
		for _, p := range t.Properties {
			paths = append(paths, resolve(p.Node, want, prefix.Append(tree.Field(p.Name)))...)
		}
		return paths
	case *tree.Array:
		if t.Items == nil {
			return nil
		}
		return resolve(t.Items, want, prefix.Append(tree.Wildcard))
	case *tree.ObjectID, *tree.Date:
		if t.Kind() == want {
			return []tree.Path{prefix.Append()}
		}
		return nil
	case *tree.Primitive, *tree.Union, nil:
		return nil
	}
	return nil
}
