package types

// Generalization closes a type over its free meta variables; instantiation
// mints fresh meta variables for a scheme's bound slots.

// FreeMetaVars collects the IDs of unsolved meta variables reachable from
// env under sub. Used to keep variables free in the context out of a
// generalized scheme.
func FreeMetaVars(sub *Subst, env *Env) map[int]bool {
	free := map[int]bool{}
	collectEnvMetaVars(sub, env, free)
	return free
}

func collectEnvMetaVars(sub *Subst, env *Env, free map[int]bool) {
	for _, inner := range env.StrEnv {
		collectEnvMetaVars(sub, inner, free)
	}
	for _, ti := range env.TyEnv {
		collectTyMetaVars(sub, ti.TyScheme.Ty, free)
	}
	for _, vi := range env.ValEnv {
		collectTyMetaVars(sub, vi.TyScheme.Ty, free)
	}
}

func collectTyMetaVars(sub *Subst, ty Ty, free map[int]bool) {
	switch t := sub.head(ty).(type) {
	case *MetaVar:
		free[t.ID] = true
		if k, ok := sub.Kind(t).(RecordKind); ok {
			for _, inner := range k.Rows {
				collectTyMetaVars(sub, inner, free)
			}
		}
	case *Record:
		for _, inner := range t.Rows {
			collectTyMetaVars(sub, inner, free)
		}
	case *Con:
		for _, arg := range t.Args {
			collectTyMetaVars(sub, arg, free)
		}
	case *Fn:
		collectTyMetaVars(sub, t.Param, free)
		collectTyMetaVars(sub, t.Res, free)
	}
}

// metaOccurrences returns the unsolved meta vars of ty in order of first
// occurrence (a deterministic order given a deterministic walk).
func metaOccurrences(sub *Subst, ty Ty) []*MetaVar {
	var out []*MetaVar
	seen := map[int]bool{}
	var walk func(Ty)
	walk = func(ty Ty) {
		switch t := sub.head(ty).(type) {
		case *MetaVar:
			if !seen[t.ID] {
				seen[t.ID] = true
				out = append(out, t)
			}
		case *Record:
			for _, lab := range OrderedLabs(t.Rows) {
				walk(t.Rows[lab])
			}
		case *Con:
			for _, arg := range t.Args {
				walk(arg)
			}
		case *Fn:
			walk(t.Param)
			walk(t.Res)
		}
	}
	walk(ty)
	return out
}

// fixedOccurrences returns the fixed vars of ty in order of first
// occurrence.
func fixedOccurrences(sub *Subst, ty Ty) []*FixedVar {
	var out []*FixedVar
	seen := map[int]bool{}
	var walk func(Ty)
	walk = func(ty Ty) {
		switch t := sub.head(ty).(type) {
		case *FixedVar:
			if !seen[t.ID] {
				seen[t.ID] = true
				out = append(out, t)
			}
		case *Record:
			for _, lab := range OrderedLabs(t.Rows) {
				walk(t.Rows[lab])
			}
		case *Con:
			for _, arg := range t.Args {
				walk(arg)
			}
		case *Fn:
			walk(t.Param)
			walk(t.Res)
		}
	}
	walk(ty)
	return out
}

// Generalize closes ty into a scheme. Fixed vars listed in fixed that
// occur in ty always become bound variables. Meta vars become bound
// variables when they are not free in envFree, are not overload
// constrained (those stay for defaulting), and expansive is false; the
// value restriction keeps an expansive right-hand side monomorphic.
func Generalize(sub *Subst, envFree map[int]bool, fixed []*FixedVar, ty Ty, expansive bool) TyScheme {
	ty = sub.Zonk(ty)

	fixedSet := map[int]bool{}
	for _, fv := range fixed {
		fixedSet[fv.ID] = true
	}

	var kinds BoundVars
	fixedIdx := map[int]int{}
	for _, fv := range fixedOccurrences(sub, ty) {
		if !fixedSet[fv.ID] {
			continue
		}
		fixedIdx[fv.ID] = len(kinds)
		if fv.Equality {
			kinds = append(kinds, EqualityKind{})
		} else {
			kinds = append(kinds, nil)
		}
	}

	metaIdx := map[int]int{}
	if !expansive {
		for _, mv := range metaOccurrences(sub, ty) {
			if envFree[mv.ID] {
				continue
			}
			kind := sub.Kind(mv)
			if _, overloaded := kind.(OverloadKind); overloaded {
				continue
			}
			if rk, ok := kind.(RecordKind); ok {
				rows := make(RecordRows, len(rk.Rows))
				for lab, inner := range rk.Rows {
					rows[lab] = sub.Zonk(inner)
				}
				kind = RecordKind{Rows: rows, Range: rk.Range}
			}
			metaIdx[mv.ID] = len(kinds)
			kinds = append(kinds, kind)
		}
	}

	if len(kinds) == 0 {
		return Mono(ty)
	}

	var bind func(Ty) Ty
	bind = func(ty Ty) Ty {
		switch t := sub.head(ty).(type) {
		case *MetaVar:
			if idx, ok := metaIdx[t.ID]; ok {
				return &BoundVar{Index: idx}
			}
			return t
		case *FixedVar:
			if idx, ok := fixedIdx[t.ID]; ok {
				return &BoundVar{Index: idx}
			}
			return t
		case *Record:
			rows := make(RecordRows, len(t.Rows))
			for lab, inner := range t.Rows {
				rows[lab] = bind(inner)
			}
			return &Record{Rows: rows}
		case *Con:
			args := make([]Ty, len(t.Args))
			for i, a := range t.Args {
				args[i] = bind(a)
			}
			return &Con{Args: args, Sym: t.Sym}
		case *Fn:
			return &Fn{Param: bind(t.Param), Res: bind(t.Res)}
		default:
			return ty
		}
	}
	body := bind(ty)

	// bind any types captured inside generalized row constraints too
	for i, kind := range kinds {
		if rk, ok := kind.(RecordKind); ok {
			rows := make(RecordRows, len(rk.Rows))
			for lab, inner := range rk.Rows {
				rows[lab] = bind(inner)
			}
			kinds[i] = RecordKind{Rows: rows, Range: rk.Range}
		}
	}

	return TyScheme{BoundVars: kinds, Ty: body}
}

// GeneralizeFixed closes ty over exactly the given fixed variables, in
// order. Used for type functions (type aliases, datatype schemes), where
// the binder arity is the declared one even when a variable is unused.
func GeneralizeFixed(fixed []*FixedVar, ty Ty) TyScheme {
	kinds := make(BoundVars, len(fixed))
	fixedIdx := map[int]int{}
	for i, fv := range fixed {
		fixedIdx[fv.ID] = i
		if fv.Equality {
			kinds[i] = EqualityKind{}
		}
	}
	var bind func(Ty) Ty
	bind = func(ty Ty) Ty {
		switch t := ty.(type) {
		case *FixedVar:
			if idx, ok := fixedIdx[t.ID]; ok {
				return &BoundVar{Index: idx}
			}
			return t
		case *Record:
			rows := make(RecordRows, len(t.Rows))
			for lab, inner := range t.Rows {
				rows[lab] = bind(inner)
			}
			return &Record{Rows: rows}
		case *Con:
			args := make([]Ty, len(t.Args))
			for i, a := range t.Args {
				args[i] = bind(a)
			}
			return &Con{Args: args, Sym: t.Sym}
		case *Fn:
			return &Fn{Param: bind(t.Param), Res: bind(t.Res)}
		default:
			return ty
		}
	}
	return TyScheme{BoundVars: kinds, Ty: bind(ty)}
}

// Instantiate returns a fresh instance of the scheme: one fresh meta var
// per bound slot, carrying the slot's kind.
func Instantiate(gen *MetaGen, sub *Subst, scheme TyScheme) Ty {
	if scheme.Arity() == 0 {
		return scheme.Ty
	}
	args := make([]Ty, scheme.Arity())
	metas := make([]*MetaVar, scheme.Arity())
	for i := range args {
		metas[i] = gen.Fresh()
		args[i] = metas[i]
	}
	// kinds may mention bound vars (row constraints); substitute them
	// with the fresh metas before installing.
	for i, kind := range scheme.BoundVars {
		switch k := kind.(type) {
		case nil:
		case RecordKind:
			rows := make(RecordRows, len(k.Rows))
			for lab, inner := range k.Rows {
				rows[lab] = substBound(inner, args)
			}
			sub.SetKind(metas[i], RecordKind{Rows: rows, Range: k.Range})
		default:
			sub.SetKind(metas[i], kind)
		}
	}
	return scheme.Apply(args)
}
