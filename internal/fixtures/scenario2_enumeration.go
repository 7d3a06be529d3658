package fixtures

import "github.com/cwbudde/qjscore/ir"

// EnumerateAfterDeleteAndReinsert builds:
//
//	function enumJoin() {
//	  var o = new Object();
//	  o.a = 1; o.b = 2;
//	  delete o.a;
//	  o.a = 3;
//	  var it = foreach_iterator_object(o);
//	  var r = "";
//	  for (var name; (name = foreach_next_property_name(it)) !== null; )
//	    r = r + name;
//	  return r;
//	}
//
// (spec.md §8.4 scenario 2). Deleting "a" then reinserting it must
// move "a" to the end of enumeration order (proptable's insertion-index
// reassignment), so the loop visits "b" before "a" and the joined result
// is "ba", not "ab". InstallObjectConstructor must be installed on the
// Engine before running this (the `new Object()` call it contains).
func EnumerateAfterDeleteAndReinsert() *ir.Function {
	o, it, r, name := ir.Temp(0), ir.Temp(1), ir.Temp(2), ir.Temp(3)

	loop := &ir.BasicBlock{Name: "loop"}
	body := &ir.BasicBlock{Name: "body"}
	done := &ir.BasicBlock{Name: "done"}

	entry := block("entry",
		ir.Move{Target: ir.TempRef{Temp: o}, Source: ir.New{Base: ir.Name{Ident: "Object"}}},
		ir.Move{Target: ir.Member{Base: ir.TempRef{Temp: o}, Name: "a"}, Source: intConst(1)},
		ir.Move{Target: ir.Member{Base: ir.TempRef{Temp: o}, Name: "b"}, Source: intConst(2)},
		ir.Exp{Expr: ir.Call{Base: ir.Name{Builtin: ir.BuiltinDelete}, Args: []ir.Expr{
			ir.Member{Base: ir.TempRef{Temp: o}, Name: "a"},
		}}},
		ir.Move{Target: ir.Member{Base: ir.TempRef{Temp: o}, Name: "a"}, Source: intConst(3)},
		ir.Move{Target: ir.TempRef{Temp: it}, Source: ir.Call{
			Base: ir.Name{Builtin: ir.BuiltinForeachIteratorObject}, Args: []ir.Expr{ir.TempRef{Temp: o}},
		}},
		ir.Move{Target: ir.TempRef{Temp: r}, Source: strLit("")},
		ir.Jump{Target: loop},
	)

	loop.Statements = []ir.Stmt{
		ir.Move{Target: ir.TempRef{Temp: name}, Source: ir.Call{
			Base: ir.Name{Builtin: ir.BuiltinForeachNextPropertyName}, Args: []ir.Expr{ir.TempRef{Temp: it}},
		}},
		ir.CJump{
			Cond:  ir.Binop{Op: ir.OpStrictEq, Left: ir.TempRef{Temp: name}, Right: ir.Const{Kind: ir.ConstNull}},
			True:  done,
			False: body,
		},
	}
	body.Statements = []ir.Stmt{
		ir.Move{Target: ir.TempRef{Temp: r}, Source: ir.TempRef{Temp: name}, Op: ir.OpAdd},
		ir.Jump{Target: loop},
	}
	done.Statements = []ir.Stmt{
		ir.Ret{Value: ir.TempRef{Temp: r}},
	}

	return &ir.Function{
		Name:       "enumJoin",
		LocalCount: 4,
		TempCount:  4,
		Blocks:     wireBlocks(entry, loop, body, done),
	}
}
